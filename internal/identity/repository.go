package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserUpdate carries the fields of a partial update. Nil pointers leave the
// corresponding column untouched.
type UserUpdate struct {
	FullName     *string
	Email        *string
	PasswordHash []byte
	Status       *Status
	LastLoginAt  *time.Time
}

// Repository persists users. Email arguments are expected pre-normalized.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, full_name, password_hash, role, status, last_login_at, created_at`

// Create inserts a new user. A unique index violation on email surfaces as
// ErrDuplicateEmail, which is the authoritative guard against concurrent
// signups racing past the existence pre-check.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, email, full_name, password_hash, role, status, last_login_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, user.Email, user.FullName, user.PasswordHash, string(user.Role), string(user.Status), user.LastLoginAt, user.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// FindByEmail fetches a user by normalized email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// Count returns the total number of users.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns users ordered newest first.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update applies a partial update and returns the resulting row.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd UserUpdate) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}

	set := make([]string, 0, 5)
	args := []any{userID}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.PasswordHash != nil {
		add("password_hash", upd.PasswordHash)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.LastLoginAt != nil {
		add("last_login_at", *upd.LastLoginAt)
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	query := `UPDATE users SET ` + joinSet(set) + ` WHERE id = $1 RETURNING ` + userColumns
	row := r.db.QueryRow(ctx, query, args...)
	user, err := scanUser(row)
	if isUniqueViolation(err) {
		return User{}, ErrDuplicateEmail
	}
	return user, err
}

func joinSet(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		id        uuid.UUID
		role      string
		status    string
		lastLogin *time.Time
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Email, &user.FullName, &user.PasswordHash, &role, &status, &lastLogin, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	user.Role = Role(role)
	user.Status = Status(status)
	user.LastLoginAt = lastLogin
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
