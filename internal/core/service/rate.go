package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

func (s *Service) UpsertRate(ctx context.Context, code string, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 || code == domain.BaseCurrency {
		return nil, domain.ErrBadRequest
	}
	if rate.Cmp(decimal.Zero) <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	saved, err := s.repo.UpsertRate(ctx, &domain.ExchangeRate{
		Code:      code,
		Rate:      rate,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("Upsert rate", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if s.rateCache != nil {
		if err := s.rateCache.SetRate(ctx, code, rate); err != nil {
			s.logger.Warn("Rate cache write", zap.String("code", code), zap.Error(err))
		}
	}

	return saved, nil
}

func (s *Service) ListRates(ctx context.Context) ([]*domain.ExchangeRate, error) {
	list, err := s.repo.ListRates(ctx)
	if err != nil {
		s.logger.Error("List rates", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

// Convert moves an amount between currencies through the USD base rate.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromRate, err := s.lookupRate(ctx, strings.ToUpper(strings.TrimSpace(from)))
	if err != nil {
		return decimal.Decimal{}, err
	}
	toRate, err := s.lookupRate(ctx, strings.ToUpper(strings.TrimSpace(to)))
	if err != nil {
		return decimal.Decimal{}, err
	}

	usd, err := amount.Quo(fromRate)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	result, err := usd.Mul(toRate)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	return result, nil
}

// lookupRate serves from the cache when possible; cache failures are logged
// and fall through to the repository.
func (s *Service) lookupRate(ctx context.Context, code string) (decimal.Decimal, error) {
	if code == domain.BaseCurrency {
		return decimal.One, nil
	}

	if s.rateCache != nil {
		cached, ok, err := s.rateCache.GetRate(ctx, code)
		if err != nil {
			s.logger.Warn("Rate cache read", zap.String("code", code), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	rate, err := s.repo.GetRate(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return decimal.Decimal{}, domain.ErrRateUnknown
		}
		s.logger.Error("Get rate", zap.String("code", code), zap.Error(err))
		return decimal.Decimal{}, domain.ErrInternal
	}

	if s.rateCache != nil {
		if err := s.rateCache.SetRate(ctx, code, rate.Rate); err != nil {
			s.logger.Warn("Rate cache write", zap.String("code", code), zap.Error(err))
		}
	}

	return rate.Rate, nil
}
