package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pg-backed credential store.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Lookup returns the stored credential record for the username.
func (s *Store) Lookup(ctx context.Context, username string) (Credentials, error) {
	var hash string
	var roleNames []string
	err := s.DB.QueryRow(ctx, `
    SELECT password_hash, roles
    FROM users
    WHERE username = $1
  `, username).Scan(&hash, &roleNames)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{PasswordHash: hash}
	for _, name := range roleNames {
		if role, ok := ParseRole(name); ok {
			creds.Roles = append(creds.Roles, role)
		}
	}
	return creds, nil
}
