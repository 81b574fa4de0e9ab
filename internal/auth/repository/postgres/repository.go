package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/access-gate/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const profileColumns = `id, username, password_hash, is_admin, banned, ban_reason, ban_expires_at, device_id, created_at, updated_at`

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.IsAdmin,
		&p.Banned, &p.BanReason, &p.BanExpiresAt, &p.DeviceID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns nil, nil when no profile has the id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
		LIMIT 1;`

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}
	return p, nil
}

// GetByUsername returns nil, nil when the username is free.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE username = $1
		LIMIT 1;`

	p, err := scanProfile(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by username: %w", err)
	}
	return p, nil
}

// Create inserts a profile. The UNIQUE constraint on username is the final
// arbiter for concurrent sign-ups; a violation maps to ErrUsernameTaken.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Username, p.PasswordHash, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return autherror.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE profiles SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`, id, hash)
	return err
}

// SetDeviceID records the first fingerprint seen for an account. It never
// overwrites an existing value and reports whether a row was written.
func (r *PostgresRepository) SetDeviceID(ctx context.Context, id, deviceID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles SET device_id = $2, updated_at = now()
		WHERE id = $1 AND device_id IS NULL
	`, id, deviceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) SetBan(ctx context.Context, id, reason string, expiresAt *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET banned = true, ban_reason = $2, ban_expires_at = $3, updated_at = now()
		WHERE id = $1
	`, id, reason, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrProfileNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearBan(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET banned = false, ban_reason = NULL, ban_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrProfileNotFound
	}
	return nil
}

func (r *PostgresRepository) ListBannedByDevice(ctx context.Context, deviceID string) ([]domain.Profile, error) {
	return r.list(ctx, `SELECT `+profileColumns+`
		FROM profiles
		WHERE device_id = $1 AND banned = true`, deviceID)
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Profile, error) {
	return r.list(ctx, `SELECT `+profileColumns+`
		FROM profiles
		ORDER BY created_at DESC`)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}
