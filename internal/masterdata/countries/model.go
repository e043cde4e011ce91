package countries

import "time"

// CountryType classifies whether a code covers one country or a region bundle.
type CountryType string

const (
	CountryTypeSingle CountryType = "SINGLE_COUNTRY"
	CountryTypeMulti  CountryType = "MULTI_COUNTRY"
)

type Country struct {
	ID            int64       `json:"id"`
	CountryCode   string      `json:"country_code"`
	CountryNameVN string      `json:"country_name_vn"`
	CountryNameEN string      `json:"country_name_en"`
	TypeCountry   CountryType `json:"type_country"`
	SeoURLKey     string      `json:"seo_url_key"`
	IsPopular     string      `json:"is_popular"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CountryName prefers the English name, falling back to Vietnamese.
func (c Country) CountryName() string {
	if c.CountryNameEN != "" {
		return c.CountryNameEN
	}
	return c.CountryNameVN
}

type CreateCountryRequest struct {
	CountryCode   string      `json:"country_code" validate:"required,max=10"`
	CountryNameVN string      `json:"country_name_vn" validate:"required"`
	CountryNameEN string      `json:"country_name_en" validate:"required"`
	TypeCountry   CountryType `json:"type_country" validate:"omitempty,oneof=SINGLE_COUNTRY MULTI_COUNTRY"`
	SeoURLKey     string      `json:"seo_url_key"`
	IsPopular     string      `json:"is_popular" validate:"omitempty,oneof=YES NO"`
}

type UpdateCountryRequest struct {
	CountryCode   *string      `json:"country_code,omitempty" validate:"omitempty,max=10"`
	CountryNameVN *string      `json:"country_name_vn,omitempty"`
	CountryNameEN *string      `json:"country_name_en,omitempty"`
	TypeCountry   *CountryType `json:"type_country,omitempty" validate:"omitempty,oneof=SINGLE_COUNTRY MULTI_COUNTRY"`
	SeoURLKey     *string      `json:"seo_url_key,omitempty"`
	IsPopular     *string      `json:"is_popular,omitempty" validate:"omitempty,oneof=YES NO"`
}
