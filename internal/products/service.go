package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ldrlegend/backend-pro/internal/attributes"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

// Write pipeline modes. Best-effort keeps the base row when a later attribute
// write fails; transactional rolls the whole create or update back.
const (
	WriteModeBestEffort    = "best-effort"
	WriteModeTransactional = "transactional"
)

// AttributeCatalog is the slice of the attribute service the product
// pipeline depends on: group membership plus option resolution.
type AttributeCatalog interface {
	CatalogForGroup(ctx context.Context, groupName string) ([]attributes.CatalogAttribute, error)
	ResolveOption(ctx context.Context, attributeCode, raw string) (attributes.AttributeOption, error)
}

type Service struct {
	repo      Repository
	catalog   AttributeCatalog
	writeMode string
}

func NewService(repo Repository, catalog AttributeCatalog, writeMode string) *Service {
	if writeMode == "" {
		writeMode = WriteModeBestEffort
	}
	return &Service{repo: repo, catalog: catalog, writeMode: writeMode}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, error) {
	return s.repo.List(ctx, filters)
}

// ListDynamic returns the filtered page with each product's attribute map
// attached.
func (s *Service) ListDynamic(ctx context.Context, filters ListFilters) ([]View, error) {
	productList, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(productList))
	for _, p := range productList {
		view, err := s.assembleView(ctx, s.repo, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("get product: %w", err)
	}
	return s.assembleView(ctx, s.repo, product)
}

func (s *Service) GetByCode(ctx context.Context, code string) (View, error) {
	product, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return View{}, fmt.Errorf("get product by code: %w", err)
	}
	return s.assembleView(ctx, s.repo, product)
}

// AvailableAttributes lists the product-group attribute catalog, options
// included, so clients can discover which keys the attribute map accepts.
func (s *Service) AvailableAttributes(ctx context.Context) ([]attributes.CatalogAttribute, error) {
	return s.catalog.CatalogForGroup(ctx, attributes.GroupProduct)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (View, error) {
	if _, err := s.repo.GetByCode(ctx, req.ProductCode); err == nil {
		return View{}, fmt.Errorf("%w: product code %q already exists", httpx.ErrDuplicate, req.ProductCode)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return View{}, fmt.Errorf("check product code: %w", err)
	}

	product := Product{
		ProductCode:        req.ProductCode,
		Status:             req.Status,
		TypeOfSim:          req.TypeOfSim,
		PurchaseType:       req.PurchaseType,
		SkuType:            req.SkuType,
		DataType:           req.DataType,
		Hotspot:            req.Hotspot,
		VendorCode:         req.VendorCode,
		OperatorCode:       req.OperatorCode,
		SupportedCountries: req.SupportedCountries,
		Note:               req.Note,
	}
	if product.Status == "" {
		product.Status = StatusActive
	}

	var view View
	write := func(repo Repository) error {
		created, err := repo.Create(ctx, product)
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if err := s.applyAttributes(ctx, repo, created.ID, req.Attribute); err != nil {
			return err
		}
		view, err = s.assembleView(ctx, repo, created)
		return err
	}

	var err error
	if s.writeMode == WriteModeTransactional {
		err = s.repo.RunAtomic(ctx, write)
	} else {
		err = write(s.repo)
	}
	if err != nil {
		return View{}, err
	}
	return view, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (View, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("get product: %w", err)
	}

	if req.ProductCode != nil && *req.ProductCode != product.ProductCode {
		if _, err := s.repo.GetByCode(ctx, *req.ProductCode); err == nil {
			return View{}, fmt.Errorf("%w: product code %q already exists", httpx.ErrDuplicate, *req.ProductCode)
		} else if !errors.Is(err, httpx.ErrNotFound) {
			return View{}, fmt.Errorf("check product code: %w", err)
		}
		product.ProductCode = *req.ProductCode
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.TypeOfSim != nil {
		product.TypeOfSim = *req.TypeOfSim
	}
	if req.PurchaseType != nil {
		product.PurchaseType = *req.PurchaseType
	}
	if req.SkuType != nil {
		product.SkuType = *req.SkuType
	}
	if req.DataType != nil {
		product.DataType = *req.DataType
	}
	if req.Hotspot != nil {
		product.Hotspot = *req.Hotspot
	}
	if req.VendorCode != nil {
		product.VendorCode = *req.VendorCode
	}
	if req.OperatorCode != nil {
		product.OperatorCode = *req.OperatorCode
	}
	if req.SupportedCountries != nil {
		product.SupportedCountries = *req.SupportedCountries
	}
	if req.Note != nil {
		product.Note = req.Note
	}

	var view View
	write := func(repo Repository) error {
		if err := repo.Update(ctx, id, product); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := s.applyAttributes(ctx, repo, id, req.Attribute); err != nil {
			return err
		}
		stored, err := repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		view, err = s.assembleView(ctx, repo, stored)
		return err
	}

	if s.writeMode == WriteModeTransactional {
		err = s.repo.RunAtomic(ctx, write)
	} else {
		err = write(s.repo)
	}
	if err != nil {
		return View{}, err
	}
	return view, nil
}

// Delete flips the product to the deleted status. The row and its attribute
// index survive for audit.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SetStatus(ctx, id, StatusDeleted); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// resolvedValue is one attribute assignment ready to index.
type resolvedValue struct {
	attributeID int64
	optionID    int64
}

// applyAttributes resolves every key/value pair against the product
// attribute group and replaces the matching index rows. Resolution runs to
// completion before any row is written, so a failed value leaves the stored
// attribute set untouched.
func (s *Service) applyAttributes(ctx context.Context, repo Repository, productID int64, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	catalog, err := s.catalog.CatalogForGroup(ctx, attributes.GroupProduct)
	if err != nil {
		return fmt.Errorf("load attribute catalog: %w", err)
	}
	known := make(map[string]attributes.CatalogAttribute, len(catalog))
	for _, entry := range catalog {
		known[entry.AttributeCode] = entry
	}

	resolved := make([]resolvedValue, 0, len(values))
	for code, raw := range values {
		// Empty values carry no assignment and are skipped, not resolved.
		if strings.TrimSpace(raw) == "" {
			continue
		}
		entry, ok := known[code]
		if !ok {
			return fmt.Errorf("%w: unknown attribute %q for products", httpx.ErrValidation, code)
		}
		option, err := s.catalog.ResolveOption(ctx, code, raw)
		if err != nil {
			return err
		}
		resolved = append(resolved, resolvedValue{attributeID: entry.ID, optionID: option.ID})
	}

	for _, value := range resolved {
		if err := repo.ReplaceAttributeValue(ctx, productID, value.attributeID, value.optionID); err != nil {
			return fmt.Errorf("index attribute value: %w", err)
		}
	}
	return nil
}

// assembleView re-reads the index rows and flattens them into the response
// map, English label first.
func (s *Service) assembleView(ctx context.Context, repo Repository, product Product) (View, error) {
	values, err := repo.AttributeValues(ctx, product.ID)
	if err != nil {
		return View{}, fmt.Errorf("load attribute values: %w", err)
	}
	attrs := make(map[string]string, len(values))
	for _, v := range values {
		attrs[v.AttributeCode] = v.Label()
	}
	return View{Product: product, Attribute: attrs}, nil
}
