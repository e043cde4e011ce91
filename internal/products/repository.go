package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ldrlegend/backend-pro/internal/platform/db"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	SetStatus(ctx context.Context, id int64, status Status) error

	AttributeValues(ctx context.Context, productID int64) ([]AttributeValue, error)
	ReplaceAttributeValue(ctx context.Context, productID, attributeID, optionID int64) error

	// RunAtomic executes fn against a transaction-bound repository. A
	// repository already bound to a transaction reuses it.
	RunAtomic(ctx context.Context, fn func(Repository) error) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type repository struct {
	db   querier
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) RunAtomic(ctx context.Context, fn func(Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&repository{db: tx})
	})
}

const productColumns = `id, product_code, status, type_of_sim, purchase_type, sku_type, data_type, hotspot, vendor_code, operator_code, supported_countries, note, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.ProductCode, &p.Status, &p.TypeOfSim, &p.PurchaseType, &p.SkuType, &p.DataType,
		&p.Hotspot, &p.VendorCode, &p.OperatorCode, &p.SupportedCountries, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Status != nil {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, *filters.Status)
	}
	if filters.PurchaseType != nil {
		argCount++
		query += ` AND purchase_type = $` + strconv.Itoa(argCount)
		args = append(args, *filters.PurchaseType)
	}

	query += ` ORDER BY id`

	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)

	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filters.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var productList []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.ProductCode, &p.Status, &p.TypeOfSim, &p.PurchaseType, &p.SkuType, &p.DataType,
			&p.Hotspot, &p.VendorCode, &p.OperatorCode, &p.SupportedCountries, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		productList = append(productList, p)
	}
	return productList, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id))
}

func (r *repository) GetByCode(ctx context.Context, code string) (Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM product WHERE product_code = $1`, code))
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO product (product_code, status, type_of_sim, purchase_type, sku_type, data_type, hotspot, vendor_code, operator_code, supported_countries, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		product.ProductCode, product.Status, product.TypeOfSim, product.PurchaseType, product.SkuType, product.DataType,
		product.Hotspot, product.VendorCode, product.OperatorCode, product.SupportedCountries, product.Note, now,
	).Scan(&product.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Product{}, httpx.ErrDuplicate
		}
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	query := `UPDATE product SET product_code = $1, status = $2, type_of_sim = $3, purchase_type = $4, sku_type = $5, data_type = $6, hotspot = $7, vendor_code = $8, operator_code = $9, supported_countries = $10, note = $11, updated_at = $12 WHERE id = $13`
	tag, err := r.db.Exec(ctx, query,
		product.ProductCode, product.Status, product.TypeOfSim, product.PurchaseType, product.SkuType, product.DataType,
		product.Hotspot, product.VendorCode, product.OperatorCode, product.SupportedCountries, product.Note, time.Now(), id,
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

func (r *repository) SetStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE product SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// AttributeValues reads the product's index rows joined with attribute codes
// and option labels, ready for flattening.
func (r *repository) AttributeValues(ctx context.Context, productID int64) ([]AttributeValue, error) {
	query := `SELECT i.attribute_id, a.attribute_code, i.attribute_option_id, o.attribute_option_en, o.attribute_option_vn
		FROM product_attribute_value_index i
		JOIN attribute a ON a.id = i.attribute_id
		JOIN attribute_option o ON o.id = i.attribute_option_id
		WHERE i.product_id = $1
		ORDER BY i.id`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []AttributeValue
	for rows.Next() {
		var v AttributeValue
		if err := rows.Scan(&v.AttributeID, &v.AttributeCode, &v.OptionID, &v.OptionEN, &v.OptionVN); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// ReplaceAttributeValue removes any prior index row for the (product,
// attribute) pair and inserts the new one, keeping the pair unique.
func (r *repository) ReplaceAttributeValue(ctx context.Context, productID, attributeID, optionID int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM product_attribute_value_index WHERE product_id = $1 AND attribute_id = $2`,
		productID, attributeID,
	); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO product_attribute_value_index (product_id, attribute_id, attribute_option_id) VALUES ($1, $2, $3)`,
		productID, attributeID, optionID,
	)
	return err
}
