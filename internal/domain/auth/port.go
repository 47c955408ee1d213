package auth

import "context"

// Ledger is the persisted set of refresh tokens that are still honored.
// Membership is the only thing that makes a refresh token usable.
type Ledger interface {
	Record(ctx context.Context, userID, refreshToken string) error
	IsValid(ctx context.Context, refreshToken string) (bool, error)
	RevokeAll(ctx context.Context, userID string) (int64, error)
}
