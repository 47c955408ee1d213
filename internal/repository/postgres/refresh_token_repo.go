package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/Foodcart/internal/auth"
	domain "github.com/NordCoder/Foodcart/internal/domain/auth"
)

var _ domain.Ledger = (*RefreshTokenRepo)(nil)

// RefreshTokenRepo is the refresh ledger. Tokens are stored as their SHA-256
// digest; membership is exact match on the digest.
type RefreshTokenRepo struct{ db *DB }

func NewRefreshTokenRepo(db *DB) *RefreshTokenRepo { return &RefreshTokenRepo{db: db} }

const (
	qRTCreate = `
INSERT INTO user_refresh_tokens (user_id, token_hash)
VALUES ($1, $2);`

	qRTExists = `
SELECT EXISTS (SELECT 1 FROM user_refresh_tokens WHERE token_hash = $1);`

	qRTRevokeAll = `
DELETE FROM user_refresh_tokens WHERE user_id = $1;`
)

func (r *RefreshTokenRepo) Record(ctx context.Context, userID, refreshToken string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.execQueryer(ctx).Exec(ctx, qRTCreate, userID, auth.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("record refresh: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepo) IsValid(ctx context.Context, refreshToken string) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var ok bool
	if err := r.db.execQueryer(ctx).QueryRow(ctx, qRTExists, auth.HashToken(refreshToken)).Scan(&ok); err != nil {
		return false, fmt.Errorf("lookup refresh: %w", err)
	}
	return ok, nil
}

func (r *RefreshTokenRepo) RevokeAll(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.execQueryer(ctx).Exec(ctx, qRTRevokeAll, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke refresh: %w", err)
	}
	return tag.RowsAffected(), nil
}
