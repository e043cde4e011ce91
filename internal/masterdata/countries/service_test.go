package countries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type mockRepository struct {
	countries map[int64]Country
	byCode    map[string]int64
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{countries: make(map[int64]Country), byCode: make(map[string]int64), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, window shared.ListWindow) ([]Country, error) {
	var out []Country
	for id := int64(1); id < m.nextID; id++ {
		if c, ok := m.countries[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Country, error) {
	c, ok := m.countries[id]
	if !ok {
		return Country{}, httpx.ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) GetByCode(_ context.Context, code string) (Country, error) {
	id, ok := m.byCode[code]
	if !ok {
		return Country{}, httpx.ErrNotFound
	}
	return m.countries[id], nil
}

func (m *mockRepository) Create(_ context.Context, country Country) (Country, error) {
	if _, exists := m.byCode[country.CountryCode]; exists {
		return Country{}, httpx.ErrDuplicate
	}
	country.ID = m.nextID
	country.CreatedAt = time.Now()
	country.UpdatedAt = country.CreatedAt
	m.nextID++
	m.countries[country.ID] = country
	m.byCode[country.CountryCode] = country.ID
	return country, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, country Country) error {
	old, ok := m.countries[id]
	if !ok {
		return httpx.ErrNotFound
	}
	delete(m.byCode, old.CountryCode)
	country.ID = id
	m.countries[id] = country
	m.byCode[country.CountryCode] = id
	return nil
}

func TestCreateCountryDefaults(t *testing.T) {
	svc := NewService(newMockRepository())

	country, err := svc.Create(context.Background(), CreateCountryRequest{
		CountryCode:   "VN",
		CountryNameVN: "Việt Nam",
		CountryNameEN: "Vietnam",
	})
	require.NoError(t, err)
	assert.Equal(t, CountryTypeSingle, country.TypeCountry)
	assert.Equal(t, "NO", country.IsPopular)
}

func TestCreateCountryDuplicateCode(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateCountryRequest{CountryCode: "VN", CountryNameVN: "Việt Nam", CountryNameEN: "Vietnam"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCountryRequest{CountryCode: "VN", CountryNameVN: "Việt Nam", CountryNameEN: "Vietnam"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCountryNameFallback(t *testing.T) {
	withEN := Country{CountryNameVN: "Việt Nam", CountryNameEN: "Vietnam"}
	assert.Equal(t, "Vietnam", withEN.CountryName())

	onlyVN := Country{CountryNameVN: "Việt Nam"}
	assert.Equal(t, "Việt Nam", onlyVN.CountryName())
}

func TestUpdateCountryPopularityFlag(t *testing.T) {
	svc := NewService(newMockRepository())
	created, err := svc.Create(context.Background(), CreateCountryRequest{CountryCode: "TH", CountryNameVN: "Thái Lan", CountryNameEN: "Thailand"})
	require.NoError(t, err)

	popular := "YES"
	updated, err := svc.Update(context.Background(), created.ID, UpdateCountryRequest{IsPopular: &popular})
	require.NoError(t, err)
	assert.Equal(t, "YES", updated.IsPopular)
	assert.Equal(t, "TH", updated.CountryCode)
}
