package domain

import "time"

type Banner struct {
	ID            uint64
	Title         string
	ImageURL      string
	ImagePublicID string
	Link          string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
