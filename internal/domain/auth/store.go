package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	MFAEnabled   bool      `json:"mfaEnabled"`
	MFASecret    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, mfa_enabled, COALESCE(mfa_secret, ''), created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.MFAEnabled, &user.MFASecret, &user.CreatedAt)
	return user, err
}

func (s *Store) FindByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, mfa_enabled, COALESCE(mfa_secret, ''), created_at
    FROM users
    WHERE id = $1
  `, userID).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.MFAEnabled, &user.MFASecret, &user.CreatedAt)
	return user, err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&count)
	return count, err
}

func (s *Store) Create(ctx context.Context, email, passwordHash, role string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
    RETURNING id
  `, email, passwordHash, role).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// SetMFASecret stores a fresh secret and drops the enabled flag; the user
// confirms a code against it before MFA starts gating logins.
func (s *Store) SetMFASecret(ctx context.Context, userID, secret string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE users SET mfa_secret = $2, mfa_enabled = FALSE WHERE id = $1
  `, userID, secret)
	return err
}

func (s *Store) SetMFAEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE users SET mfa_enabled = $2 WHERE id = $1
  `, userID, enabled)
	return err
}
