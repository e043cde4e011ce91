package countries

import (
	"context"
	"errors"
	"fmt"

	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, window shared.ListWindow) ([]Country, error) {
	return s.repo.List(ctx, window)
}

func (s *Service) Get(ctx context.Context, id int64) (Country, error) {
	if id <= 0 {
		return Country{}, fmt.Errorf("%w: invalid country ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (Country, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Create(ctx context.Context, req CreateCountryRequest) (Country, error) {
	if _, err := s.repo.GetByCode(ctx, req.CountryCode); err == nil {
		return Country{}, fmt.Errorf("%w: country code already exists", httpx.ErrDuplicate)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return Country{}, fmt.Errorf("check existing country: %w", err)
	}
	country := Country{
		CountryCode:   req.CountryCode,
		CountryNameVN: req.CountryNameVN,
		CountryNameEN: req.CountryNameEN,
		TypeCountry:   req.TypeCountry,
		SeoURLKey:     req.SeoURLKey,
		IsPopular:     req.IsPopular,
	}
	if country.TypeCountry == "" {
		country.TypeCountry = CountryTypeSingle
	}
	if country.IsPopular == "" {
		country.IsPopular = "NO"
	}
	return s.repo.Create(ctx, country)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCountryRequest) (Country, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Country{}, err
	}
	if req.CountryCode != nil && *req.CountryCode != existing.CountryCode {
		if other, err := s.repo.GetByCode(ctx, *req.CountryCode); err == nil && other.ID != id {
			return Country{}, fmt.Errorf("%w: country code already exists", httpx.ErrDuplicate)
		} else if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return Country{}, fmt.Errorf("check existing country: %w", err)
		}
		existing.CountryCode = *req.CountryCode
	}
	if req.CountryNameVN != nil {
		existing.CountryNameVN = *req.CountryNameVN
	}
	if req.CountryNameEN != nil {
		existing.CountryNameEN = *req.CountryNameEN
	}
	if req.TypeCountry != nil {
		existing.TypeCountry = *req.TypeCountry
	}
	if req.SeoURLKey != nil {
		existing.SeoURLKey = *req.SeoURLKey
	}
	if req.IsPopular != nil {
		existing.IsPopular = *req.IsPopular
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Country{}, err
	}
	return s.repo.Get(ctx, id)
}
