package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// UserRepository provides persistence for accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns the account with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, name, user_type, password_hash, preferences, created_at
FROM users WHERE email = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the account with the given identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, name, user_type, password_hash, preferences, created_at
FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO users (id, email, name, user_type, password_hash, preferences, created_at)
VALUES (:id, :email, :name, :user_type, :password_hash, :preferences, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpsertPreferences stores scheduling preferences for an email, creating a
// bare account-less row when the uploader has never registered.
func (r *UserRepository) UpsertPreferences(ctx context.Context, email string, preferences []byte) error {
	const query = `INSERT INTO users (id, email, name, user_type, password_hash, preferences, created_at)
VALUES ($1, $2, '', $3, '', $4, $5)
ON CONFLICT (email) DO UPDATE SET preferences = EXCLUDED.preferences`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), email, models.UserTypeStudent, preferences, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

// GetPreferences returns the stored scheduling preferences for an email.
// sql.ErrNoRows when nothing was ever stored.
func (r *UserRepository) GetPreferences(ctx context.Context, email string) (types.JSONText, error) {
	var preferences types.JSONText
	if err := r.db.GetContext(ctx, &preferences, "SELECT preferences FROM users WHERE email = $1", email); err != nil {
		return nil, err
	}
	return preferences, nil
}
