package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/NordCoder/Foodcart/internal/apperr"
	domainauth "github.com/NordCoder/Foodcart/internal/domain/auth"
	domaincart "github.com/NordCoder/Foodcart/internal/domain/cart"
	"github.com/NordCoder/Foodcart/internal/domain/catalog"
	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
)

type Usecase struct {
	users    user.Repo
	products catalog.Repo
	items    domaincart.Repo
}

func NewUsecase(users user.Repo, products catalog.Repo, items domaincart.Repo) *Usecase {
	return &Usecase{users: users, products: products, items: items}
}

// ResolveUser maps the principal's email to the stored user id. A principal
// whose account is gone is treated as unauthenticated.
func ResolveUser(ctx context.Context, users user.Repo, p domainauth.Principal) (*user.User, error) {
	u, err := users.GetByIdentifier(ctx, user.Email(p.Email))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperr.Unauthorized()
		}
		return nil, apperr.Unexpected(err)
	}
	return u, nil
}

func validItem(it domaincart.Item) error {
	if it.ProductID <= 0 {
		return apperr.BadRequest("product_id must be positive!")
	}
	if it.Quantity <= 0 {
		return apperr.BadRequest("quantity must be positive!")
	}
	return nil
}

func (u *Usecase) List(ctx context.Context, p domainauth.Principal) ([]domaincart.Item, error) {
	owner, err := ResolveUser(ctx, u.users, p)
	if err != nil {
		return nil, err
	}
	items, err := u.items.List(ctx, owner.ID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return items, nil
}

func (u *Usecase) Add(ctx context.Context, p domainauth.Principal, it domaincart.Item) error {
	if err := validItem(it); err != nil {
		return err
	}
	owner, err := ResolveUser(ctx, u.users, p)
	if err != nil {
		return err
	}
	ok, err := u.products.Exists(ctx, it.ProductID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if !ok {
		return apperr.New(http.StatusNotFound, apperr.CodeProductDoesNotExist, "Product does not exist!")
	}
	if err := u.items.Add(ctx, owner.ID, it); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

func (u *Usecase) SetQuantity(ctx context.Context, p domainauth.Principal, it domaincart.Item) error {
	if err := validItem(it); err != nil {
		return err
	}
	owner, err := ResolveUser(ctx, u.users, p)
	if err != nil {
		return err
	}
	ok, err := u.items.SetQuantity(ctx, owner.ID, it)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if !ok {
		return apperr.New(http.StatusNotFound, apperr.CodeQuantityNotUpdated, "Product quantity could not be updated!")
	}
	return nil
}

func (u *Usecase) Remove(ctx context.Context, p domainauth.Principal, productID int64) error {
	owner, err := ResolveUser(ctx, u.users, p)
	if err != nil {
		return err
	}
	ok, err := u.items.Remove(ctx, owner.ID, productID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if !ok {
		return apperr.New(http.StatusNotFound, apperr.CodeProductNotDeleted, "Product could not be deleted from cart!")
	}
	return nil
}

func (u *Usecase) Clear(ctx context.Context, p domainauth.Principal) error {
	owner, err := ResolveUser(ctx, u.users, p)
	if err != nil {
		return err
	}
	if err := u.items.Clear(ctx, owner.ID); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}
