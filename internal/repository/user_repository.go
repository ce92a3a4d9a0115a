package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tempoaovivo/account-service/shared/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository is the only path to the users table. Every method is a
// single parameterised statement; consistency comes from the store.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and returns the id assigned by the store. A duplicate
// email is reported as ErrDuplicateEmail straight from the UNIQUE constraint.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password, phone, address, city, zip)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.Phone, user.Address, user.City, user.Zip,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetByEmail fetches the full write model, PasswordHash included.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password, phone, address, city, zip
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, password, phone, address, city, zip
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdateProfile overwrites the mutable columns of one row and returns how
// many rows matched. Zero is not an error.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, p models.Profile) (int64, error) {
	query := `
		UPDATE users
		SET name = $1, phone = $2, address = $3, city = $4, zip = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query, p.Name, p.Phone, p.Address, p.City, p.Zip, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}

// Ping checks that the store is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	var name, password, phone, address, city, zip sql.NullString

	err := row.Scan(&user.ID, &name, &user.Email, &password, &phone, &address, &city, &zip)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Name = name.String
	user.PasswordHash = password.String
	user.Phone = phone.String
	user.Address = address.String
	user.City = city.String
	user.Zip = zip.String
	return &user, nil
}
