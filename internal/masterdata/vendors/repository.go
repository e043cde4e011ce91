package vendors

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
	List(ctx context.Context, window shared.ListWindow) ([]Vendor, error)
	Get(ctx context.Context, id int64) (Vendor, error)
	GetByCode(ctx context.Context, code string) (Vendor, error)
	Create(ctx context.Context, vendor Vendor) (Vendor, error)
	Update(ctx context.Context, id int64, vendor Vendor) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const vendorColumns = `id, vendor_code, vendor_name, created_at, updated_at`

func (r *repository) List(ctx context.Context, window shared.ListWindow) ([]Vendor, error) {
	window = window.Clamp()
	query := `SELECT ` + vendorColumns + ` FROM vendor ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.VendorCode, &v.VendorName, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor WHERE id = $1`
	var v Vendor
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.VendorCode, &v.VendorName, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vendor{}, httpx.ErrNotFound
	}
	return v, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendor WHERE vendor_code = $1`
	var v Vendor
	err := r.db.QueryRow(ctx, query, code).Scan(&v.ID, &v.VendorCode, &v.VendorName, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vendor{}, httpx.ErrNotFound
	}
	return v, err
}

func (r *repository) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	query := `INSERT INTO vendor (vendor_code, vendor_name, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, vendor.VendorCode, vendor.VendorName, now).Scan(&vendor.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Vendor{}, httpx.ErrDuplicate
		}
		return Vendor{}, err
	}
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	return vendor, nil
}

func (r *repository) Update(ctx context.Context, id int64, vendor Vendor) error {
	query := `UPDATE vendor SET vendor_code = $1, vendor_name = $2, updated_at = $3 WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, vendor.VendorCode, vendor.VendorName, time.Now(), id)
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
