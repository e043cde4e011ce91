package operators

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
	List(ctx context.Context, window shared.ListWindow) ([]Operator, error)
	Get(ctx context.Context, id int64) (Operator, error)
	GetByCode(ctx context.Context, code string) (Operator, error)
	Create(ctx context.Context, operator Operator) (Operator, error)
	Update(ctx context.Context, id int64, operator Operator) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const operatorColumns = `id, operator_code, operator_name, country_id, created_at, updated_at`

func scanOperator(row pgx.Row) (Operator, error) {
	var o Operator
	err := row.Scan(&o.ID, &o.OperatorCode, &o.OperatorName, &o.CountryID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Operator{}, httpx.ErrNotFound
	}
	return o, err
}

func (r *repository) List(ctx context.Context, window shared.ListWindow) ([]Operator, error) {
	window = window.Clamp()
	query := `SELECT ` + operatorColumns + ` FROM operator ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operators []Operator
	for rows.Next() {
		var o Operator
		if err := rows.Scan(&o.ID, &o.OperatorCode, &o.OperatorName, &o.CountryID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		operators = append(operators, o)
	}
	return operators, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Operator, error) {
	return scanOperator(r.db.QueryRow(ctx, `SELECT `+operatorColumns+` FROM operator WHERE id = $1`, id))
}

func (r *repository) GetByCode(ctx context.Context, code string) (Operator, error) {
	return scanOperator(r.db.QueryRow(ctx, `SELECT `+operatorColumns+` FROM operator WHERE operator_code = $1`, code))
}

func (r *repository) Create(ctx context.Context, operator Operator) (Operator, error) {
	query := `INSERT INTO operator (operator_code, operator_name, country_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, operator.OperatorCode, operator.OperatorName, operator.CountryID, now).Scan(&operator.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Operator{}, httpx.ErrDuplicate
		}
		return Operator{}, err
	}
	operator.CreatedAt = now
	operator.UpdatedAt = now
	return operator, nil
}

func (r *repository) Update(ctx context.Context, id int64, operator Operator) error {
	query := `UPDATE operator SET operator_code = $1, operator_name = $2, country_id = $3, updated_at = $4 WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, operator.OperatorCode, operator.OperatorName, operator.CountryID, time.Now(), id)
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
