// Package products implements the SIM/eSIM product entity together with its
// extensible attribute assignments.
package products

import "time"

// Status is the product lifecycle state. Deletion is a terminal status flip,
// never a physical removal.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusLowStock  Status = "Low Stock"
	StatusB2BOnly   Status = "B2B Only"
	StatusTemporary Status = "Temporary"
	StatusPreparing Status = "Preparing"
	StatusDeleted   Status = "Deleted"
	StatusEcomOnly  Status = "Ecom-Only"
)

// Statuses lists every legal lifecycle state, in catalog order.
var Statuses = []Status{
	StatusActive, StatusInactive, StatusLowStock, StatusB2BOnly,
	StatusTemporary, StatusPreparing, StatusDeleted, StatusEcomOnly,
}

type SimType string

const (
	SimTypePhysical SimType = "SIM"
	SimTypeESIM     SimType = "eSIM"
)

var SimTypes = []SimType{SimTypePhysical, SimTypeESIM}

type PurchaseType string

const (
	PurchaseTypeAPI    PurchaseType = "API Purchase"
	PurchaseTypeManual PurchaseType = "Manual Purchase"
	PurchaseTypeStock  PurchaseType = "Only Stock"
)

var PurchaseTypes = []PurchaseType{PurchaseTypeAPI, PurchaseTypeManual, PurchaseTypeStock}

type SkuType string

const (
	SkuTypeBase         SkuType = "Base"
	SkuTypeDatapack     SkuType = "Datapack"
	SkuTypeBaseDatapack SkuType = "Base + Datapack"
)

var SkuTypes = []SkuType{SkuTypeBase, SkuTypeDatapack, SkuTypeBaseDatapack}

type DataType string

const (
	DataTypeFixed DataType = "Fixed Data"
	DataTypeDaily DataType = "Daily Data"
)

var DataTypes = []DataType{DataTypeFixed, DataTypeDaily}

// Product is the base catalog row. Vendor, operator and country are
// referenced by business code rather than internal id.
type Product struct {
	ID                 int64        `json:"id"`
	ProductCode        string       `json:"product_code"`
	Status             Status       `json:"status"`
	TypeOfSim          SimType      `json:"type_of_sim"`
	PurchaseType       PurchaseType `json:"purchase_type"`
	SkuType            SkuType      `json:"sku_type"`
	DataType           DataType     `json:"data_type"`
	Hotspot            bool         `json:"hotspot"`
	VendorCode         string       `json:"vendor_code"`
	OperatorCode       string       `json:"operator_code"`
	SupportedCountries string       `json:"supported_countries"`
	Note               *string      `json:"note,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// View is the dynamically shaped response: the typed base row plus an open
// code-to-label map assembled from the attribute index.
type View struct {
	Product
	Attribute map[string]string `json:"attribute"`
}

// AttributeValue is one flattened index row: the product has this attribute
// set to this option.
type AttributeValue struct {
	AttributeID   int64
	AttributeCode string
	OptionID      int64
	OptionEN      string
	OptionVN      string
}

// Label prefers the English option label, falling back to Vietnamese.
func (v AttributeValue) Label() string {
	if v.OptionEN != "" {
		return v.OptionEN
	}
	return v.OptionVN
}

type CreateProductRequest struct {
	ProductCode        string            `json:"product_code" validate:"required,max=50"`
	Status             Status            `json:"status" validate:"omitempty,oneof=Active Inactive 'Low Stock' 'B2B Only' Temporary Preparing Deleted Ecom-Only"`
	TypeOfSim          SimType           `json:"type_of_sim" validate:"omitempty,oneof=SIM eSIM"`
	PurchaseType       PurchaseType      `json:"purchase_type" validate:"omitempty,oneof='API Purchase' 'Manual Purchase' 'Only Stock'"`
	SkuType            SkuType           `json:"sku_type" validate:"omitempty,oneof=Base Datapack 'Base + Datapack'"`
	DataType           DataType          `json:"data_type" validate:"omitempty,oneof='Fixed Data' 'Daily Data'"`
	Hotspot            bool              `json:"hotspot"`
	VendorCode         string            `json:"vendor_code" validate:"required,max=50"`
	OperatorCode       string            `json:"operator_code" validate:"required,max=50"`
	SupportedCountries string            `json:"supported_countries" validate:"required"`
	Note               *string           `json:"note,omitempty"`
	Attribute          map[string]string `json:"attribute,omitempty"`
}

// UpdateProductRequest carries partial-update fields; nil means unchanged.
// An attribute key present in the map replaces any prior value wholesale.
type UpdateProductRequest struct {
	ProductCode        *string           `json:"product_code,omitempty" validate:"omitempty,max=50"`
	Status             *Status           `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive 'Low Stock' 'B2B Only' Temporary Preparing Deleted Ecom-Only"`
	TypeOfSim          *SimType          `json:"type_of_sim,omitempty" validate:"omitempty,oneof=SIM eSIM"`
	PurchaseType       *PurchaseType     `json:"purchase_type,omitempty" validate:"omitempty,oneof='API Purchase' 'Manual Purchase' 'Only Stock'"`
	SkuType            *SkuType          `json:"sku_type,omitempty" validate:"omitempty,oneof=Base Datapack 'Base + Datapack'"`
	DataType           *DataType         `json:"data_type,omitempty" validate:"omitempty,oneof='Fixed Data' 'Daily Data'"`
	Hotspot            *bool             `json:"hotspot,omitempty"`
	VendorCode         *string           `json:"vendor_code,omitempty" validate:"omitempty,max=50"`
	OperatorCode       *string           `json:"operator_code,omitempty" validate:"omitempty,max=50"`
	SupportedCountries *string           `json:"supported_countries,omitempty"`
	Note               *string           `json:"note,omitempty"`
	Attribute          map[string]string `json:"attribute,omitempty"`
}

// ListFilters selects a page of products with optional equality filters.
type ListFilters struct {
	Skip         int
	Limit        int
	Status       *Status
	PurchaseType *PurchaseType
}
