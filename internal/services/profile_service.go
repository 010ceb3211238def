package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/techbay/auth-backend/internal/apperr"
	"github.com/techbay/auth-backend/internal/models"
)

// pgUniqueViolation is the Postgres error code for unique constraint hits.
const pgUniqueViolation = "23505"

// ProfileServiceProvider defines the interface for profile access.
type ProfileServiceProvider interface {
	Create(ctx context.Context, p models.CreateProfile) (models.Profile, error)
	GetByCredentials(ctx context.Context, username, passwordHash string) (models.Profile, error)
	GetByID(ctx context.Context, id int) (models.Profile, error)
}

// ProfileService provides Postgres-backed profile access.
type ProfileService struct {
	db *sql.DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

const profileColumns = `id, username, password, displayname, address, is_address_public,
	telephone_number, is_telephone_number_public, status, is_status_public`

// Create inserts a new profile. A duplicate username surfaces as a
// validation error; any other database failure is internal.
func (s *ProfileService) Create(ctx context.Context, p models.CreateProfile) (models.Profile, error) {
	profile := models.Profile{
		Username:    p.Username,
		Password:    p.Password,
		Displayname: p.Displayname,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO profiles (username, password, displayname) VALUES ($1, $2, $3) RETURNING id`,
		p.Username, p.Password, p.Displayname,
	).Scan(&profile.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.Profile{}, apperr.Newf(apperr.Validation, "Error creating user: %v", err)
		}
		return models.Profile{}, apperr.Newf(apperr.Internal, "Error creating user: %v", err)
	}

	return profile, nil
}

// GetByCredentials returns the profile matching the username and password
// hash exactly, or a not-found error.
func (s *ProfileService) GetByCredentials(ctx context.Context, username, passwordHash string) (models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = $1 AND password = $2`,
		username, passwordHash,
	)
	return scanProfile(row, "logging in")
}

// GetByID returns the profile with the given id, or a not-found error.
func (s *ProfileService) GetByID(ctx context.Context, id int) (models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)
	return scanProfile(row, "getting user")
}

func scanProfile(row *sql.Row, op string) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Username, &p.Password, &p.Displayname,
		&p.Address, &p.IsAddressPublic,
		&p.TelephoneNumber, &p.IsTelephoneNumberPublic,
		&p.Status, &p.IsStatusPublic,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, apperr.Newf(apperr.NotFound, "Error %s: user not found", op)
		}
		return models.Profile{}, apperr.Newf(apperr.Internal, "Error %s: %v", op, err)
	}
	return p, nil
}
