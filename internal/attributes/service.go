package attributes

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

// Resolution modes for option-label lookups.
const (
	ResolutionFirstMatch = "first-match"
	ResolutionStrict     = "strict"
)

type Service struct {
	repo       Repository
	resolution string
	catalog    singleflight.Group
}

// NewService constructs the attribute catalog service. resolution selects how
// ambiguous option labels are handled; first-match reproduces the historical
// behavior.
func NewService(repo Repository, resolution string) *Service {
	if resolution == "" {
		resolution = ResolutionFirstMatch
	}
	return &Service{repo: repo, resolution: resolution}
}

func (s *Service) List(ctx context.Context, window shared.ListWindow) ([]Attribute, error) {
	return s.repo.List(ctx, window)
}

func (s *Service) Get(ctx context.Context, id int64) (Attribute, error) {
	if id <= 0 {
		return Attribute{}, fmt.Errorf("%w: invalid attribute ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (Attribute, error) {
	return s.repo.GetByCode(ctx, code)
}

// Create inserts the attribute and links it into the requested groups.
func (s *Service) Create(ctx context.Context, req CreateAttributeRequest) (Attribute, error) {
	if _, err := s.repo.GetByCode(ctx, req.AttributeCode); err == nil {
		return Attribute{}, fmt.Errorf("%w: attribute code already exists", httpx.ErrDuplicate)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return Attribute{}, fmt.Errorf("check existing attribute: %w", err)
	}

	attribute := Attribute{
		AttributeCode:   req.AttributeCode,
		AttributeNameVN: req.AttributeNameVN,
		AttributeNameEN: req.AttributeNameEN,
		TypeAttribute:   req.TypeAttribute,
		Status:          StatusActive,
	}
	if attribute.TypeAttribute == "" {
		attribute.TypeAttribute = TypeText
	}

	created, err := s.repo.Create(ctx, attribute)
	if err != nil {
		return Attribute{}, err
	}

	for _, groupName := range req.Groups {
		group, err := s.repo.GetGroupByName(ctx, groupName)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return Attribute{}, fmt.Errorf("%w: unknown group %q", httpx.ErrValidation, groupName)
			}
			return Attribute{}, fmt.Errorf("resolve group %q: %w", groupName, err)
		}
		if err := s.repo.LinkAttribute(ctx, created.ID, group.ID); err != nil {
			return Attribute{}, fmt.Errorf("link attribute to %q: %w", groupName, err)
		}
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateAttributeRequest) (Attribute, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Attribute{}, err
	}
	if req.AttributeCode != nil && *req.AttributeCode != existing.AttributeCode {
		if other, err := s.repo.GetByCode(ctx, *req.AttributeCode); err == nil && other.ID != id {
			return Attribute{}, fmt.Errorf("%w: attribute code already exists", httpx.ErrDuplicate)
		} else if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return Attribute{}, fmt.Errorf("check existing attribute: %w", err)
		}
		existing.AttributeCode = *req.AttributeCode
	}
	if req.AttributeNameVN != nil {
		existing.AttributeNameVN = *req.AttributeNameVN
	}
	if req.AttributeNameEN != nil {
		existing.AttributeNameEN = *req.AttributeNameEN
	}
	if req.TypeAttribute != nil {
		existing.TypeAttribute = *req.TypeAttribute
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Attribute{}, err
	}
	return s.repo.Get(ctx, id)
}

// LinkToGroup adds an (attribute, group) membership row.
func (s *Service) LinkToGroup(ctx context.Context, attributeID int64, groupName string) error {
	if _, err := s.repo.Get(ctx, attributeID); err != nil {
		return err
	}
	group, err := s.repo.GetGroupByName(ctx, groupName)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return fmt.Errorf("%w: unknown group %q", httpx.ErrValidation, groupName)
		}
		return err
	}
	return s.repo.LinkAttribute(ctx, attributeID, group.ID)
}

// CatalogForGroup returns the attributes legally assignable to entities of the
// named group, each carrying its declared value type and full option list.
// Concurrent calls for the same group are coalesced; nothing is cached.
// The shared build runs on a detached context so cancelling one caller
// does not fail the others riding the same flight.
func (s *Service) CatalogForGroup(ctx context.Context, groupName string) ([]CatalogAttribute, error) {
	result := s.catalog.DoChan(groupName, func() (interface{}, error) {
		return s.buildCatalog(context.WithoutCancel(ctx), groupName)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]CatalogAttribute), nil
	}
}

func (s *Service) buildCatalog(ctx context.Context, groupName string) ([]CatalogAttribute, error) {
	if _, err := s.repo.GetGroupByName(ctx, groupName); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown group %q", httpx.ErrValidation, groupName)
		}
		return nil, err
	}
	attrs, err := s.repo.ListByGroup(ctx, groupName)
	if err != nil {
		return nil, fmt.Errorf("list group attributes: %w", err)
	}
	codes := make([]string, 0, len(attrs))
	for _, a := range attrs {
		codes = append(codes, a.AttributeCode)
	}
	optionsByCode, err := s.repo.ListOptionsForAttributes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("list group options: %w", err)
	}
	catalog := make([]CatalogAttribute, 0, len(attrs))
	for _, a := range attrs {
		opts := optionsByCode[a.AttributeCode]
		if opts == nil {
			opts = []AttributeOption{}
		}
		catalog = append(catalog, CatalogAttribute{Attribute: a, Options: opts})
	}
	return catalog, nil
}

func (s *Service) ListGroups(ctx context.Context) ([]AttributeGroup, error) {
	return s.repo.ListGroups(ctx)
}

func (s *Service) GetGroup(ctx context.Context, id int64) (AttributeGroup, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) GetGroupByName(ctx context.Context, name string) (AttributeGroup, error) {
	return s.repo.GetGroupByName(ctx, name)
}

func (s *Service) CreateGroup(ctx context.Context, req CreateGroupRequest) (AttributeGroup, error) {
	return s.repo.CreateGroup(ctx, AttributeGroup{GroupName: req.GroupName})
}

func (s *Service) ListOptions(ctx context.Context, window shared.ListWindow) ([]AttributeOption, error) {
	return s.repo.ListOptions(ctx, window)
}

func (s *Service) GetOption(ctx context.Context, id int64) (AttributeOption, error) {
	if id <= 0 {
		return AttributeOption{}, fmt.Errorf("%w: invalid option ID", httpx.ErrValidation)
	}
	return s.repo.GetOption(ctx, id)
}

// OptionsByAttributeCode lists the legal values of one attribute.
func (s *Service) OptionsByAttributeCode(ctx context.Context, code string) ([]AttributeOption, error) {
	if _, err := s.repo.GetByCode(ctx, code); err != nil {
		return nil, err
	}
	return s.repo.ListOptionsForAttribute(ctx, code)
}

func (s *Service) CreateOption(ctx context.Context, req CreateOptionRequest) (AttributeOption, error) {
	if _, err := s.repo.GetByCode(ctx, req.AttributeCode); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return AttributeOption{}, fmt.Errorf("%w: unknown attribute code %q", httpx.ErrValidation, req.AttributeCode)
		}
		return AttributeOption{}, err
	}
	return s.repo.CreateOption(ctx, AttributeOption{
		AttributeCode:     req.AttributeCode,
		AttributeOptionVN: req.AttributeOptionVN,
		AttributeOptionEN: req.AttributeOptionEN,
	})
}

func (s *Service) UpdateOption(ctx context.Context, id int64, req UpdateOptionRequest) (AttributeOption, error) {
	existing, err := s.repo.GetOption(ctx, id)
	if err != nil {
		return AttributeOption{}, err
	}
	if req.AttributeCode != nil && *req.AttributeCode != existing.AttributeCode {
		if _, err := s.repo.GetByCode(ctx, *req.AttributeCode); err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return AttributeOption{}, fmt.Errorf("%w: unknown attribute code %q", httpx.ErrValidation, *req.AttributeCode)
			}
			return AttributeOption{}, err
		}
		existing.AttributeCode = *req.AttributeCode
	}
	if req.AttributeOptionVN != nil {
		existing.AttributeOptionVN = *req.AttributeOptionVN
	}
	if req.AttributeOptionEN != nil {
		existing.AttributeOptionEN = *req.AttributeOptionEN
	}
	if err := s.repo.UpdateOption(ctx, id, existing); err != nil {
		return AttributeOption{}, err
	}
	return s.repo.GetOption(ctx, id)
}
