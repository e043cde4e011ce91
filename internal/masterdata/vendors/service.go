package vendors

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

func (s *Service) List(ctx context.Context, window shared.ListWindow) ([]Vendor, error) {
	return s.repo.List(ctx, window)
}

func (s *Service) Get(ctx context.Context, id int64) (Vendor, error) {
	if id <= 0 {
		return Vendor{}, fmt.Errorf("%w: invalid vendor ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (Vendor, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Create(ctx context.Context, req CreateVendorRequest) (Vendor, error) {
	if _, err := s.repo.GetByCode(ctx, req.VendorCode); err == nil {
		return Vendor{}, fmt.Errorf("%w: vendor code already exists", httpx.ErrDuplicate)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return Vendor{}, fmt.Errorf("check existing vendor: %w", err)
	}
	return s.repo.Create(ctx, Vendor{VendorCode: req.VendorCode, VendorName: req.VendorName})
}

// Update applies the supplied fields only; a changed code must not collide
// with a different vendor.
func (s *Service) Update(ctx context.Context, id int64, req UpdateVendorRequest) (Vendor, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Vendor{}, err
	}
	if req.VendorCode != nil && *req.VendorCode != existing.VendorCode {
		if other, err := s.repo.GetByCode(ctx, *req.VendorCode); err == nil && other.ID != id {
			return Vendor{}, fmt.Errorf("%w: vendor code already exists", httpx.ErrDuplicate)
		} else if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return Vendor{}, fmt.Errorf("check existing vendor: %w", err)
		}
		existing.VendorCode = *req.VendorCode
	}
	if req.VendorName != nil {
		existing.VendorName = req.VendorName
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Vendor{}, err
	}
	return s.repo.Get(ctx, id)
}
