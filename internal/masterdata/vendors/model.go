package vendors

import "time"

// Vendor is a SIM stock supplier identified by its business code.
type Vendor struct {
	ID         int64     `json:"id"`
	VendorCode string    `json:"vendor_code"`
	VendorName *string   `json:"vendor_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateVendorRequest struct {
	VendorCode string  `json:"vendor_code" validate:"required,max=50"`
	VendorName *string `json:"vendor_name,omitempty" validate:"omitempty,max=100"`
}

// UpdateVendorRequest carries partial-update fields; nil means unchanged.
type UpdateVendorRequest struct {
	VendorCode *string `json:"vendor_code,omitempty" validate:"omitempty,max=50"`
	VendorName *string `json:"vendor_name,omitempty" validate:"omitempty,max=100"`
}
