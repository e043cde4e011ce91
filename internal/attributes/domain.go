// Package attributes implements the extensible attribute catalog: attributes,
// their functional groups, the legal option values per attribute, and the
// resolution of raw payload values against that catalog.
package attributes

import "time"

// AttributeType tags how an attribute's value is interpreted.
type AttributeType string

const (
	TypeText        AttributeType = "Text"
	TypeNumber      AttributeType = "Number"
	TypeSelect      AttributeType = "Select"
	TypeMultiselect AttributeType = "Multiselect"
)

// Attribute lifecycle status.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Group names are a fixed set seeded at bootstrap.
const (
	GroupProduct = "product"
	GroupSku     = "sku"
	GroupListing = "listing"
	GroupItem    = "item"
	GroupCountry = "country"
)

type Attribute struct {
	ID              int64         `json:"id"`
	AttributeCode   string        `json:"attribute_code"`
	AttributeNameVN string        `json:"attribute_name_vn"`
	AttributeNameEN string        `json:"attribute_name_en"`
	TypeAttribute   AttributeType `json:"type_attribute"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// AttributeName prefers the English name, falling back to Vietnamese.
func (a Attribute) AttributeName() string {
	if a.AttributeNameEN != "" {
		return a.AttributeNameEN
	}
	return a.AttributeNameVN
}

type AttributeGroup struct {
	ID        int64     `json:"id"`
	GroupName string    `json:"group_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttributeGroupLink binds one attribute to one group.
type AttributeGroupLink struct {
	ID          int64     `json:"id"`
	AttributeID int64     `json:"attribute_id"`
	GroupID     int64     `json:"group_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttributeOption struct {
	ID                int64     `json:"id"`
	AttributeCode     string    `json:"attribute_code"`
	AttributeOptionVN string    `json:"attribute_option_vn"`
	AttributeOptionEN string    `json:"attribute_option_en"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Label prefers the English option label, falling back to Vietnamese.
func (o AttributeOption) Label() string {
	if o.AttributeOptionEN != "" {
		return o.AttributeOptionEN
	}
	return o.AttributeOptionVN
}

// CatalogAttribute is one attribute of a group's catalog together with its
// full legal value set.
type CatalogAttribute struct {
	Attribute
	Options []AttributeOption `json:"options"`
}

type CreateAttributeRequest struct {
	AttributeCode   string        `json:"attribute_code" validate:"required,max=100"`
	AttributeNameVN string        `json:"attribute_name_vn" validate:"required"`
	AttributeNameEN string        `json:"attribute_name_en" validate:"required"`
	TypeAttribute   AttributeType `json:"type_attribute" validate:"omitempty,oneof=Text Number Select Multiselect"`
	Groups          []string      `json:"groups,omitempty" validate:"omitempty,dive,oneof=product sku listing item country"`
}

type UpdateAttributeRequest struct {
	AttributeCode   *string        `json:"attribute_code,omitempty" validate:"omitempty,max=100"`
	AttributeNameVN *string        `json:"attribute_name_vn,omitempty"`
	AttributeNameEN *string        `json:"attribute_name_en,omitempty"`
	TypeAttribute   *AttributeType `json:"type_attribute,omitempty" validate:"omitempty,oneof=Text Number Select Multiselect"`
	Status          *string        `json:"status,omitempty" validate:"omitempty,oneof=active deleted"`
}

type CreateOptionRequest struct {
	AttributeCode     string `json:"attribute_code" validate:"required,max=100"`
	AttributeOptionVN string `json:"attribute_option_vn" validate:"required"`
	AttributeOptionEN string `json:"attribute_option_en" validate:"required"`
}

type UpdateOptionRequest struct {
	AttributeCode     *string `json:"attribute_code,omitempty" validate:"omitempty,max=100"`
	AttributeOptionVN *string `json:"attribute_option_vn,omitempty"`
	AttributeOptionEN *string `json:"attribute_option_en,omitempty"`
}

type CreateGroupRequest struct {
	GroupName string `json:"group_name" validate:"required,oneof=product sku listing item country"`
}
