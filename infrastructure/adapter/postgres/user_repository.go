package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/domain/entity"
)

const uniqueViolation = "23505"

type UserRepositoryAdapter struct {
	db *sql.DB
}

func NewUserRepositoryAdapter(db *sql.DB) outbound.UserRepository {
	return &UserRepositoryAdapter{db: db}
}

const userColumns = "id, email, password, subscribed, stripe_customer_id, created_at, updated_at"

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "find user by ID")
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "find user by email")
}

func (r *UserRepositoryAdapter) FindByBillingIdentity(ctx context.Context, customerID string) (*entity.User, error) {
	if customerID == "" {
		return nil, fmt.Errorf("customer ID cannot be empty")
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE stripe_customer_id = $1
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, customerID), "find user by billing identity")
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if user.ID == "" || user.Email == "" || user.Password == "" {
		return fmt.Errorf("user ID, email, and password are required")
	}

	query := `
		INSERT INTO users (id, email, password, subscribed, stripe_customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Password,
		user.Subscribed,
		user.StripeCustomerID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return outbound.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// AssignBillingIdentity is a compare-and-set: it only writes when no billing
// identity is assigned yet, so two concurrent checkout calls cannot both
// persist a customer ID. The unique index on stripe_customer_id backs the
// global uniqueness invariant.
func (r *UserRepositoryAdapter) AssignBillingIdentity(ctx context.Context, userID, customerID string) error {
	if userID == "" || customerID == "" {
		return fmt.Errorf("user ID and customer ID are required")
	}

	query := `
		UPDATE users
		SET stripe_customer_id = $2, updated_at = NOW()
		WHERE id = $1 AND stripe_customer_id IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, userID, customerID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return outbound.ErrBillingIdentityTaken
		}
		return fmt.Errorf("failed to assign billing identity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return outbound.ErrBillingIdentityTaken
	}
	return nil
}

func (r *UserRepositoryAdapter) MarkSubscribed(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	query := `
		UPDATE users
		SET subscribed = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user subscribed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return outbound.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryAdapter) scanOne(row *sql.Row, op string) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Subscribed,
		&user.StripeCustomerID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return &user, nil
}
