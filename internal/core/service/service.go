package service

import (
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	notifier     port.Notifier
	rateCache    port.RateCache
	images       port.ImageStore
	logger       *zap.Logger
}

// NewService wires the core workflow. rateCache and images may be nil when
// the deployment runs without redis or object storage.
func NewService(repo port.Repository, tokenService port.TokenService,
	notifier port.Notifier, rateCache port.RateCache, images port.ImageStore,
	logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		notifier:     notifier,
		rateCache:    rateCache,
		images:       images,
		logger:       logger,
	}, nil
}
