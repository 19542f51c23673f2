package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/avoronin/tasktracker/internal/models"
)

const (
	loginUniqueConstraint = "users_login_key"
	phoneUniqueConstraint = "users_phone_key"
)

type postgresUserRepository struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresUserRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserRepository {
	return &postgresUserRepository{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   first_name,
                   phone,
                   login,
                   password,
                   created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.FirstName,
		user.Phone,
		user.Login,
		user.Password,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case loginUniqueConstraint:
				r.logger.Warn().
					Str("login", user.Login).
					Msg("login unique constraint violated")
				return ErrDuplicateLogin
			case phoneUniqueConstraint:
				r.logger.Warn().
					Str("phone", user.Phone).
					Msg("phone unique constraint violated")
				return ErrDuplicatePhone
			}
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return err
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Msg("inserted user")

	return nil
}

func (r *postgresUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{Login: login}

	const selectUserByLoginQuery = `
SELECT id,
       first_name,
       phone,
       password,
       created_at
FROM users
WHERE login = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByLoginQuery,
		login,
	).Scan(
		&user.ID,
		&user.FirstName,
		&user.Phone,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Msg("failed to select user by login")
		return nil, err
	}

	return user, nil
}

func (r *postgresUserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	user := &models.User{Phone: phone}

	const selectUserByPhoneQuery = `
SELECT id,
       first_name,
       login,
       password,
       created_at
FROM users
WHERE phone = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByPhoneQuery,
		phone,
	).Scan(
		&user.ID,
		&user.FirstName,
		&user.Login,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Msg("failed to select user by phone")
		return nil, err
	}

	return user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{ID: id}

	// The password hash is deliberately not selected here.
	const selectUserByIDQuery = `
SELECT first_name,
       phone,
       login,
       created_at
FROM users
WHERE id = $1
`
	err := r.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		id,
	).Scan(
		&user.FirstName,
		&user.Phone,
		&user.Login,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}

	return user, nil
}

func (r *postgresUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	const selectAllUsersQuery = `
SELECT id,
       first_name,
       phone,
       login,
       created_at
FROM users
ORDER BY created_at
`
	rows, err := r.pgPool.Query(ctx, selectAllUsersQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.Phone,
			&user.Login,
			&user.CreatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return users, nil
}
