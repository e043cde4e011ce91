package countries

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, window shared.ListWindow) ([]Country, error)
	Get(ctx context.Context, id int64) (Country, error)
	GetByCode(ctx context.Context, code string) (Country, error)
	Create(ctx context.Context, country Country) (Country, error)
	Update(ctx context.Context, id int64, country Country) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const countryColumns = `id, country_code, country_name_vn, country_name_en, type_country, seo_url_key, is_popular, created_at, updated_at`

func scanCountry(row pgx.Row) (Country, error) {
	var c Country
	err := row.Scan(&c.ID, &c.CountryCode, &c.CountryNameVN, &c.CountryNameEN, &c.TypeCountry, &c.SeoURLKey, &c.IsPopular, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Country{}, httpx.ErrNotFound
	}
	return c, err
}

func (r *repository) List(ctx context.Context, window shared.ListWindow) ([]Country, error) {
	window = window.Clamp()
	query := `SELECT ` + countryColumns + ` FROM country ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.CountryCode, &c.CountryNameVN, &c.CountryNameEN, &c.TypeCountry, &c.SeoURLKey, &c.IsPopular, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Country, error) {
	return scanCountry(r.db.QueryRow(ctx, `SELECT `+countryColumns+` FROM country WHERE id = $1`, id))
}

func (r *repository) GetByCode(ctx context.Context, code string) (Country, error) {
	return scanCountry(r.db.QueryRow(ctx, `SELECT `+countryColumns+` FROM country WHERE country_code = $1`, code))
}

func (r *repository) Create(ctx context.Context, country Country) (Country, error) {
	query := `INSERT INTO country (country_code, country_name_vn, country_name_en, type_country, seo_url_key, is_popular, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		country.CountryCode, country.CountryNameVN, country.CountryNameEN,
		country.TypeCountry, country.SeoURLKey, country.IsPopular, now,
	).Scan(&country.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Country{}, httpx.ErrDuplicate
		}
		return Country{}, err
	}
	country.CreatedAt = now
	country.UpdatedAt = now
	return country, nil
}

func (r *repository) Update(ctx context.Context, id int64, country Country) error {
	query := `UPDATE country SET country_code = $1, country_name_vn = $2, country_name_en = $3, type_country = $4, seo_url_key = $5, is_popular = $6, updated_at = $7 WHERE id = $8`
	tag, err := r.db.Exec(ctx, query,
		country.CountryCode, country.CountryNameVN, country.CountryNameEN,
		country.TypeCountry, country.SeoURLKey, country.IsPopular, time.Now(), id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httpx.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
