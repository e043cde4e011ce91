package operators

import "time"

// Operator is a mobile network operator tied to one country.
type Operator struct {
	ID           int64     `json:"id"`
	OperatorCode string    `json:"operator_code"`
	OperatorName string    `json:"operator_name"`
	CountryID    int64     `json:"country_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateOperatorRequest struct {
	OperatorCode string `json:"operator_code" validate:"required,max=50"`
	OperatorName string `json:"operator_name" validate:"required,max=100"`
	CountryCode  string `json:"country_code" validate:"required"`
}

type UpdateOperatorRequest struct {
	OperatorCode *string `json:"operator_code,omitempty" validate:"omitempty,max=50"`
	OperatorName *string `json:"operator_name,omitempty" validate:"omitempty,max=100"`
	CountryCode  *string `json:"country_code,omitempty"`
}
