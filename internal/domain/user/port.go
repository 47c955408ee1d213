package user

import "context"

type Repo interface {
	Create(ctx context.Context, u *User) error
	GetByIdentifier(ctx context.Context, id Identifier) (*User, error)
	Exists(ctx context.Context, id Identifier) (bool, error)
}
