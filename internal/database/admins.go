// internal/database/admins.go
package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MHBDPro/rage-backend/internal/auth"
	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

// CreateAdmin inserts a back-office account, hashing the password first.
func (st *Store) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}

	hash, err := auth.CreateHash(admin.Password, auth.Params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin.Password = hash

	q := `INSERT INTO admins (id, username, password) VALUES ($1, $2, $3)`
	err = pgx.BeginTxFunc(ctx, st.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, admin.ID, admin.Username, admin.Password)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the back-office account from ADMIN_USERNAME /
// ADMIN_PASSWORD on first boot. A no-op when the account exists or the env
// vars are unset.
func (st *Store) EnsureDefaultAdmin(ctx context.Context) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	_, err := st.GetAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, scrims.ErrNotFound) {
		return err
	}

	return st.CreateAdmin(ctx, &models.Admin{Username: username, Password: password})
}

func (st *Store) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	q := `SELECT id, username, password FROM admins WHERE username=$1`
	err := st.pool.QueryRow(ctx, q, username).Scan(&a.ID, &a.Username, &a.Password)
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AuthenticateAdmin verifies credentials and returns a signed session token.
func (st *Store) AuthenticateAdmin(ctx context.Context, username, password string) (string, error) {
	admin, err := st.GetAdminByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("admin not found or db error: %w", err)
	}

	match, err := auth.ComparePasswordAndHash(password, admin.Password)
	if err != nil || !match {
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := auth.CreateJWT(admin.ID.String())
	if err != nil {
		return "", fmt.Errorf("failed to create jwt: %w", err)
	}
	return token, nil
}
