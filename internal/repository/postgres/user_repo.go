package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

var _ user.Repo = (*UserRepo)(nil)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const (
	ConstraintUserEmail = "users_email_key"
	ConstraintUserPhone = "users_phone_number_key"
)

const (
	qUserInsert = `
INSERT INTO users (id, name, email, phone_number, password, profile_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at;`

	qUserSelect = `
SELECT id, name, email, phone_number, password, profile_image, created_at
FROM users
WHERE `
)

// identifierColumn maps the identifier kind to its column. The column name is
// never taken from input.
func identifierColumn(id user.Identifier) (string, error) {
	switch id.Kind() {
	case user.KindEmail:
		return "email", nil
	case user.KindPhone:
		return "phone_number", nil
	default:
		return "", fmt.Errorf("unknown identifier kind %d", id.Kind())
	}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.execQueryer(ctx).QueryRow(ctx, qUserInsert,
		u.ID, u.Name, u.Email, u.PhoneNumber, u.Password, u.ProfileImage,
	).Scan(&u.CreatedAt); err != nil {
		if cerr := asConflict(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByIdentifier(ctx context.Context, id user.Identifier) (*user.User, error) {
	col, err := identifierColumn(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u user.User
	row := r.db.execQueryer(ctx).QueryRow(ctx, qUserSelect+col+" = $1;", id.Value())
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Password, &u.ProfileImage, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user by %s: %w", col, err)
	}
	return &u, nil
}

func (r *UserRepo) Exists(ctx context.Context, id user.Identifier) (bool, error) {
	col, err := identifierColumn(id)
	if err != nil {
		return false, err
	}
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var ok bool
	q := "SELECT EXISTS (SELECT 1 FROM users WHERE " + col + " = $1);"
	if err := r.db.execQueryer(ctx).QueryRow(ctx, q, id.Value()).Scan(&ok); err != nil {
		return false, fmt.Errorf("user exists by %s: %w", col, err)
	}
	return ok, nil
}
