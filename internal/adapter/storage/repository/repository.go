package repository

import (
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/storage"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}
