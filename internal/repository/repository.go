package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/matrix-service/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible to the caller
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a unique constraint violation
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// Schema creates the tables used by the service
const Schema = `
CREATE SCHEMA IF NOT EXISTS matrix;
CREATE TABLE IF NOT EXISTS matrix.users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS matrix.dates (
	id             BIGSERIAL PRIMARY KEY,
	user_id        BIGINT NOT NULL REFERENCES matrix.users(id) ON DELETE CASCADE,
	label          TEXT NOT NULL DEFAULT '',
	birth_date_enc TEXT NOT NULL,
	subscribed     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate applies Schema
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO matrix.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM matrix.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveDate stores an encrypted birth date for a user
func (r *Repository) SaveDate(ctx context.Context, rec *models.DateRecord) error {
	query := `
		INSERT INTO matrix.dates (user_id, label, birth_date_enc, subscribed, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, rec.UserID, rec.Label, rec.BirthDateEnc, rec.Subscribed).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save date: %w", err)
	}
	return nil
}

// ListDates returns a user's saved dates, newest first
func (r *Repository) ListDates(ctx context.Context, userID int64) ([]models.DateRecord, error) {
	query := `
		SELECT id, user_id, label, birth_date_enc, subscribed, created_at
		FROM matrix.dates
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	defer rows.Close()

	var records []models.DateRecord
	for rows.Next() {
		var rec models.DateRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Label, &rec.BirthDateEnc, &rec.Subscribed, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	return records, nil
}

// DeleteDate removes a saved date owned by userID
func (r *Repository) DeleteDate(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matrix.dates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete date: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete date: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("date %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListSubscriptions returns every saved date flagged for the digest
func (r *Repository) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	query := `
		SELECT d.id, d.label, d.birth_date_enc, u.username, u.email
		FROM matrix.dates d
		JOIN matrix.users u ON u.id = d.user_id
		WHERE d.subscribed
		ORDER BY d.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.RecordID, &s.Label, &s.BirthDateEnc, &s.Username, &s.Email); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
