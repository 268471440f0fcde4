package service

import (
	"context"
	"errors"
	"io"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"go.uber.org/zap"
)

const bannerFolder = "banners"

func (s *Service) ListBanners(ctx context.Context, activeOnly bool) ([]*domain.Banner, error) {
	list, err := s.repo.ListBanners(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List banners", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) CreateBanner(ctx context.Context, banner *domain.Banner, image io.Reader) (*domain.Banner, error) {
	if image != nil && s.images != nil {
		url, publicID, err := s.images.Upload(ctx, image, bannerFolder)
		if err != nil {
			s.logger.Error("Banner image upload", zap.Error(err))
			return nil, domain.ErrInternal
		}
		banner.ImageURL = url
		banner.ImagePublicID = publicID
	}

	saved, err := s.repo.CreateBanner(ctx, banner)
	if err != nil {
		s.logger.Error("Create banner", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return saved, nil
}

func (s *Service) UpdateBanner(ctx context.Context, banner *domain.Banner, image io.Reader) (*domain.Banner, error) {
	existing, err := s.repo.GetBanner(ctx, banner.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Get banner", zap.Error(err))
		return nil, domain.ErrInternal
	}

	banner.ImageURL = existing.ImageURL
	banner.ImagePublicID = existing.ImagePublicID

	if image != nil && s.images != nil {
		url, publicID, err := s.images.Upload(ctx, image, bannerFolder)
		if err != nil {
			s.logger.Error("Banner image upload", zap.Error(err))
			return nil, domain.ErrInternal
		}
		if existing.ImagePublicID != "" {
			if err := s.images.Delete(ctx, existing.ImagePublicID); err != nil {
				s.logger.Warn("Old banner image delete", zap.Error(err))
			}
		}
		banner.ImageURL = url
		banner.ImagePublicID = publicID
	}

	saved, err := s.repo.UpdateBanner(ctx, banner)
	if err != nil {
		s.logger.Error("Update banner", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return saved, nil
}

func (s *Service) DeleteBanner(ctx context.Context, id uint64) error {
	banner, err := s.repo.GetBanner(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return err
		}
		s.logger.Error("Get banner", zap.Error(err))
		return domain.ErrInternal
	}

	if banner.ImagePublicID != "" && s.images != nil {
		if err := s.images.Delete(ctx, banner.ImagePublicID); err != nil {
			s.logger.Warn("Banner image delete", zap.Error(err))
		}
	}

	if err := s.repo.DeleteBanner(ctx, id); err != nil {
		s.logger.Error("Delete banner", zap.Error(err))
		return domain.ErrInternal
	}
	return nil
}
