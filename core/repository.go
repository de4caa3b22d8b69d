package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRecord is the persistence-layer projection of a user row. Only the
// repository and the auth service ever see HashedPassword.
type UserRecord struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// UserUpdateInput carries a partial update. Nil fields keep current values.
// Password is already hashed by the caller.
type UserUpdateInput struct {
	Email          *string
	HashedPassword *string
	IsActive       *bool
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, id int64) (*UserRecord, error)
	Create(ctx context.Context, email, hashedPassword string) (*UserRecord, error)
	Update(ctx context.Context, id int64, in UserUpdateInput) (*UserRecord, error)
	Delete(ctx context.Context, id int64) (*UserRecord, error)
	List(ctx context.Context, skip, limit int) ([]UserRecord, error)
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: db}
}

const userColumns = `id, email, hashed_password, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*UserRecord, error) {
	var u UserRecord
	if err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *PgUserRepository) FindByID(ctx context.Context, id int64) (*UserRecord, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *PgUserRepository) Create(ctx context.Context, email, hashedPassword string) (*UserRecord, error) {
	const q = `INSERT INTO users (email, hashed_password) VALUES ($1,$2) RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, q, email, hashedPassword))
	if err != nil {
		// naive duplicate detection
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Update applies the non-nil fields of in and bumps updated_at.
func (r *PgUserRepository) Update(ctx context.Context, id int64, in UserUpdateInput) (*UserRecord, error) {
	const q = `UPDATE users SET
		email = COALESCE($2, email),
		hashed_password = COALESCE($3, hashed_password),
		is_active = COALESCE($4, is_active),
		updated_at = now()
	WHERE id=$1 RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, q, id, in.Email, in.HashedPassword, in.IsActive))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Delete removes the row and returns its last state for the response body.
func (r *PgUserRepository) Delete(ctx context.Context, id int64) (*UserRecord, error) {
	const q = `DELETE FROM users WHERE id=$1 RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, q, id))
}

// List returns users ordered by id using skip/limit offsets.
func (r *PgUserRepository) List(ctx context.Context, skip, limit int) ([]UserRecord, error) {
	if skip < 0 || limit <= 0 {
		return nil, errors.New("invalid pagination")
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]UserRecord, 0, limit)
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
