package attributes

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
	// Attributes
	List(ctx context.Context, window shared.ListWindow) ([]Attribute, error)
	Get(ctx context.Context, id int64) (Attribute, error)
	GetByCode(ctx context.Context, code string) (Attribute, error)
	Create(ctx context.Context, attribute Attribute) (Attribute, error)
	Update(ctx context.Context, id int64, attribute Attribute) error
	ListByGroup(ctx context.Context, groupName string) ([]Attribute, error)

	// Groups and links
	ListGroups(ctx context.Context) ([]AttributeGroup, error)
	GetGroup(ctx context.Context, id int64) (AttributeGroup, error)
	GetGroupByName(ctx context.Context, name string) (AttributeGroup, error)
	CreateGroup(ctx context.Context, group AttributeGroup) (AttributeGroup, error)
	LinkAttribute(ctx context.Context, attributeID, groupID int64) error

	// Options
	ListOptions(ctx context.Context, window shared.ListWindow) ([]AttributeOption, error)
	GetOption(ctx context.Context, id int64) (AttributeOption, error)
	GetOptionForAttribute(ctx context.Context, attributeCode string, optionID int64) (AttributeOption, error)
	ListOptionsForAttribute(ctx context.Context, attributeCode string) ([]AttributeOption, error)
	ListOptionsForAttributes(ctx context.Context, attributeCodes []string) (map[string][]AttributeOption, error)
	CreateOption(ctx context.Context, option AttributeOption) (AttributeOption, error)
	UpdateOption(ctx context.Context, id int64, option AttributeOption) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const attributeColumns = `id, attribute_code, attribute_name_vn, attribute_name_en, type_attribute, status, created_at, updated_at`

func scanAttribute(row pgx.Row) (Attribute, error) {
	var a Attribute
	err := row.Scan(&a.ID, &a.AttributeCode, &a.AttributeNameVN, &a.AttributeNameEN, &a.TypeAttribute, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Attribute{}, httpx.ErrNotFound
	}
	return a, err
}

func collectAttributes(rows pgx.Rows) ([]Attribute, error) {
	defer rows.Close()
	var attrs []Attribute
	for rows.Next() {
		var a Attribute
		if err := rows.Scan(&a.ID, &a.AttributeCode, &a.AttributeNameVN, &a.AttributeNameEN, &a.TypeAttribute, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

func (r *repository) List(ctx context.Context, window shared.ListWindow) ([]Attribute, error) {
	window = window.Clamp()
	rows, err := r.db.Query(ctx, `SELECT `+attributeColumns+` FROM attribute ORDER BY id LIMIT $1 OFFSET $2`, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	return collectAttributes(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Attribute, error) {
	return scanAttribute(r.db.QueryRow(ctx, `SELECT `+attributeColumns+` FROM attribute WHERE id = $1`, id))
}

func (r *repository) GetByCode(ctx context.Context, code string) (Attribute, error) {
	return scanAttribute(r.db.QueryRow(ctx, `SELECT `+attributeColumns+` FROM attribute WHERE attribute_code = $1`, code))
}

func (r *repository) Create(ctx context.Context, attribute Attribute) (Attribute, error) {
	query := `INSERT INTO attribute (attribute_code, attribute_name_vn, attribute_name_en, type_attribute, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		attribute.AttributeCode, attribute.AttributeNameVN, attribute.AttributeNameEN,
		attribute.TypeAttribute, attribute.Status, now,
	).Scan(&attribute.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Attribute{}, httpx.ErrDuplicate
		}
		return Attribute{}, err
	}
	attribute.CreatedAt = now
	attribute.UpdatedAt = now
	return attribute, nil
}

func (r *repository) Update(ctx context.Context, id int64, attribute Attribute) error {
	query := `UPDATE attribute SET attribute_code = $1, attribute_name_vn = $2, attribute_name_en = $3, type_attribute = $4, status = $5, updated_at = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, query,
		attribute.AttributeCode, attribute.AttributeNameVN, attribute.AttributeNameEN,
		attribute.TypeAttribute, attribute.Status, time.Now(), id,
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

// ListByGroup returns active attributes linked to the named group. Membership
// comes from link rows only; there is no implicit group.
func (r *repository) ListByGroup(ctx context.Context, groupName string) ([]Attribute, error) {
	query := `SELECT a.id, a.attribute_code, a.attribute_name_vn, a.attribute_name_en, a.type_attribute, a.status, a.created_at, a.updated_at
		FROM attribute a
		JOIN attribute_group_link l ON l.attribute_id = a.id
		JOIN attribute_group g ON g.id = l.group_id
		WHERE g.group_name = $1 AND a.status = $2
		ORDER BY a.id`
	rows, err := r.db.Query(ctx, query, groupName, StatusActive)
	if err != nil {
		return nil, err
	}
	return collectAttributes(rows)
}

func (r *repository) ListGroups(ctx context.Context) ([]AttributeGroup, error) {
	rows, err := r.db.Query(ctx, `SELECT id, group_name, created_at, updated_at FROM attribute_group ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []AttributeGroup
	for rows.Next() {
		var g AttributeGroup
		if err := rows.Scan(&g.ID, &g.GroupName, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *repository) GetGroup(ctx context.Context, id int64) (AttributeGroup, error) {
	var g AttributeGroup
	err := r.db.QueryRow(ctx, `SELECT id, group_name, created_at, updated_at FROM attribute_group WHERE id = $1`, id).
		Scan(&g.ID, &g.GroupName, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AttributeGroup{}, httpx.ErrNotFound
	}
	return g, err
}

func (r *repository) GetGroupByName(ctx context.Context, name string) (AttributeGroup, error) {
	var g AttributeGroup
	err := r.db.QueryRow(ctx, `SELECT id, group_name, created_at, updated_at FROM attribute_group WHERE group_name = $1`, name).
		Scan(&g.ID, &g.GroupName, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AttributeGroup{}, httpx.ErrNotFound
	}
	return g, err
}

func (r *repository) CreateGroup(ctx context.Context, group AttributeGroup) (AttributeGroup, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO attribute_group (group_name, created_at, updated_at) VALUES ($1, $2, $2) RETURNING id`,
		group.GroupName, now,
	).Scan(&group.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AttributeGroup{}, httpx.ErrDuplicate
		}
		return AttributeGroup{}, err
	}
	group.CreatedAt = now
	group.UpdatedAt = now
	return group, nil
}

// LinkAttribute is idempotent: one row per (attribute, group) pair.
func (r *repository) LinkAttribute(ctx context.Context, attributeID, groupID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO attribute_group_link (attribute_id, group_id) VALUES ($1, $2) ON CONFLICT ON CONSTRAINT uq_attribute_group DO NOTHING`,
		attributeID, groupID,
	)
	return err
}

const optionColumns = `id, attribute_code, attribute_option_vn, attribute_option_en, created_at, updated_at`

func scanOption(row pgx.Row) (AttributeOption, error) {
	var o AttributeOption
	err := row.Scan(&o.ID, &o.AttributeCode, &o.AttributeOptionVN, &o.AttributeOptionEN, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AttributeOption{}, httpx.ErrNotFound
	}
	return o, err
}

func collectOptions(rows pgx.Rows) ([]AttributeOption, error) {
	defer rows.Close()
	var opts []AttributeOption
	for rows.Next() {
		var o AttributeOption
		if err := rows.Scan(&o.ID, &o.AttributeCode, &o.AttributeOptionVN, &o.AttributeOptionEN, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (r *repository) ListOptions(ctx context.Context, window shared.ListWindow) ([]AttributeOption, error) {
	window = window.Clamp()
	rows, err := r.db.Query(ctx, `SELECT `+optionColumns+` FROM attribute_option ORDER BY id LIMIT $1 OFFSET $2`, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	return collectOptions(rows)
}

func (r *repository) GetOption(ctx context.Context, id int64) (AttributeOption, error) {
	return scanOption(r.db.QueryRow(ctx, `SELECT `+optionColumns+` FROM attribute_option WHERE id = $1`, id))
}

func (r *repository) GetOptionForAttribute(ctx context.Context, attributeCode string, optionID int64) (AttributeOption, error) {
	return scanOption(r.db.QueryRow(ctx,
		`SELECT `+optionColumns+` FROM attribute_option WHERE attribute_code = $1 AND id = $2`,
		attributeCode, optionID,
	))
}

func (r *repository) ListOptionsForAttribute(ctx context.Context, attributeCode string) ([]AttributeOption, error) {
	rows, err := r.db.Query(ctx, `SELECT `+optionColumns+` FROM attribute_option WHERE attribute_code = $1 ORDER BY id`, attributeCode)
	if err != nil {
		return nil, err
	}
	return collectOptions(rows)
}

func (r *repository) ListOptionsForAttributes(ctx context.Context, attributeCodes []string) (map[string][]AttributeOption, error) {
	if len(attributeCodes) == 0 {
		return map[string][]AttributeOption{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+optionColumns+` FROM attribute_option WHERE attribute_code = ANY($1) ORDER BY id`, attributeCodes)
	if err != nil {
		return nil, err
	}
	opts, err := collectOptions(rows)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string][]AttributeOption, len(attributeCodes))
	for _, o := range opts {
		byCode[o.AttributeCode] = append(byCode[o.AttributeCode], o)
	}
	return byCode, nil
}

func (r *repository) CreateOption(ctx context.Context, option AttributeOption) (AttributeOption, error) {
	query := `INSERT INTO attribute_option (attribute_code, attribute_option_vn, attribute_option_en, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, option.AttributeCode, option.AttributeOptionVN, option.AttributeOptionEN, now).Scan(&option.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return AttributeOption{}, httpx.ErrValidation
		}
		return AttributeOption{}, err
	}
	option.CreatedAt = now
	option.UpdatedAt = now
	return option, nil
}

func (r *repository) UpdateOption(ctx context.Context, id int64, option AttributeOption) error {
	query := `UPDATE attribute_option SET attribute_code = $1, attribute_option_vn = $2, attribute_option_en = $3, updated_at = $4 WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, option.AttributeCode, option.AttributeOptionVN, option.AttributeOptionEN, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
