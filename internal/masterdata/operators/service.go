package operators

import (
	"context"
	"errors"
	"fmt"

	"github.com/ldrlegend/backend-pro/internal/masterdata/countries"
	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

// CountryResolver resolves a country business code to its row.
type CountryResolver interface {
	GetByCode(ctx context.Context, code string) (countries.Country, error)
}

type Service struct {
	repo      Repository
	countries CountryResolver
}

func NewService(repo Repository, countries CountryResolver) *Service {
	return &Service{repo: repo, countries: countries}
}

func (s *Service) List(ctx context.Context, window shared.ListWindow) ([]Operator, error) {
	return s.repo.List(ctx, window)
}

func (s *Service) Get(ctx context.Context, id int64) (Operator, error) {
	if id <= 0 {
		return Operator{}, fmt.Errorf("%w: invalid operator ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (Operator, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Create(ctx context.Context, req CreateOperatorRequest) (Operator, error) {
	if _, err := s.repo.GetByCode(ctx, req.OperatorCode); err == nil {
		return Operator{}, fmt.Errorf("%w: operator code already exists", httpx.ErrDuplicate)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return Operator{}, fmt.Errorf("check existing operator: %w", err)
	}
	country, err := s.countries.GetByCode(ctx, req.CountryCode)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Operator{}, fmt.Errorf("%w: unknown country code %q", httpx.ErrValidation, req.CountryCode)
		}
		return Operator{}, fmt.Errorf("resolve country: %w", err)
	}
	return s.repo.Create(ctx, Operator{
		OperatorCode: req.OperatorCode,
		OperatorName: req.OperatorName,
		CountryID:    country.ID,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOperatorRequest) (Operator, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Operator{}, err
	}
	if req.OperatorCode != nil && *req.OperatorCode != existing.OperatorCode {
		if other, err := s.repo.GetByCode(ctx, *req.OperatorCode); err == nil && other.ID != id {
			return Operator{}, fmt.Errorf("%w: operator code already exists", httpx.ErrDuplicate)
		} else if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return Operator{}, fmt.Errorf("check existing operator: %w", err)
		}
		existing.OperatorCode = *req.OperatorCode
	}
	if req.OperatorName != nil {
		existing.OperatorName = *req.OperatorName
	}
	if req.CountryCode != nil {
		country, err := s.countries.GetByCode(ctx, *req.CountryCode)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return Operator{}, fmt.Errorf("%w: unknown country code %q", httpx.ErrValidation, *req.CountryCode)
			}
			return Operator{}, fmt.Errorf("resolve country: %w", err)
		}
		existing.CountryID = country.ID
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Operator{}, err
	}
	return s.repo.Get(ctx, id)
}
