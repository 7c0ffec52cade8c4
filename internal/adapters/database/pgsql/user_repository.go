package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/SscSPs/social_media_app/internal/models"
	"github.com/SscSPs/social_media_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, date_of_birth, password_hash, email_verify_token,
        forgot_password_token, verify, username, bio, location, website, avatar, cover_photo,
        created_at, updated_at`

func (r *PgxUserRepository) InsertUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.DateOfBirth,
		m.Password,
		m.EmailVerifyToken,
		m.ForgotPasswordToken,
		m.Verify,
		m.Username,
		m.Bio,
		m.Location,
		m.Website,
		m.Avatar,
		m.CoverPhoto,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return mapUserConstraint(err)
		}
		return fmt.Errorf("failed to insert user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) error {
	sets, args := userPatchToSQL(patch)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE user_id = $%d;", strings.Join(sets, ", "), len(args))

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return mapUserConstraint(err)
		}
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *PgxUserRepository) FindUserByEmailAndPassword(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1 AND password_hash = $2", email, passwordHash)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + `;`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.DateOfBirth,
		&m.Password,
		&m.EmailVerifyToken,
		&m.ForgotPasswordToken,
		&m.Verify,
		&m.Username,
		&m.Bio,
		&m.Location,
		&m.Website,
		&m.Avatar,
		&m.CoverPhoto,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// userPatchToSQL returns the SET clauses and positional arguments for the non-nil patch fields.
func userPatchToSQL(p domain.UserPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.DateOfBirth != nil {
		add("date_of_birth", *p.DateOfBirth)
	}
	if p.PasswordHash != nil {
		add("password_hash", *p.PasswordHash)
	}
	if p.EmailVerifyToken != nil {
		add("email_verify_token", *p.EmailVerifyToken)
	}
	if p.ForgotPasswordToken != nil {
		add("forgot_password_token", *p.ForgotPasswordToken)
	}
	if p.Verify != nil {
		add("verify", int(*p.Verify))
	}
	if p.Username != nil {
		add("username", *p.Username)
	}
	if p.Bio != nil {
		add("bio", *p.Bio)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Website != nil {
		add("website", *p.Website)
	}
	if p.Avatar != nil {
		add("avatar", *p.Avatar)
	}
	if p.CoverPhoto != nil {
		add("cover_photo", *p.CoverPhoto)
	}
	if !p.UpdatedAt.IsZero() {
		add("updated_at", p.UpdatedAt)
	}
	return sets, args
}
