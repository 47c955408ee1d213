package auth

import (
	"context"
	"errors"
	"sync"

	authx "github.com/NordCoder/Foodcart/internal/auth"
	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*user.User
	err  error
	race string // constraint reported by Create regardless of Exists
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*user.User{}} }

func (f *fakeUsers) seed(id, name, email, phone, password string) *user.User {
	hash, err := authx.HashPassword(password)
	if err != nil {
		panic(err)
	}
	u := &user.User{ID: id, Name: name, Email: email, PhoneNumber: phone, Password: hash}
	f.byID[id] = u
	return u
}

func (f *fakeUsers) find(id user.Identifier) *user.User {
	for _, u := range f.byID {
		if id.Kind() == user.KindEmail && u.Email == id.Value() {
			return u
		}
		if id.Kind() == user.KindPhone && u.PhoneNumber == id.Value() {
			return u
		}
	}
	return nil
}

func (f *fakeUsers) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.race != "" {
		return &postgres.ConflictError{Constraint: f.race}
	}
	if f.find(user.Email(u.Email)) != nil {
		return &postgres.ConflictError{Constraint: postgres.ConstraintUserEmail}
	}
	if f.find(user.Phone(u.PhoneNumber)) != nil {
		return &postgres.ConflictError{Constraint: postgres.ConstraintUserPhone}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, id user.Identifier) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u := f.find(id)
	if u == nil {
		return nil, postgres.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Exists(_ context.Context, id user.Identifier) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.race != "" {
		return false, nil
	}
	return f.find(id) != nil, nil
}

type fakeLedger struct {
	mu        sync.Mutex
	rows      map[string]string // token -> user id
	lookups   int
	recordErr error
	lookupErr error
}

func newFakeLedger() *fakeLedger { return &fakeLedger{rows: map[string]string{}} }

func (f *fakeLedger) Record(_ context.Context, userID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	if _, dup := f.rows[token]; dup {
		return errors.New("duplicate token")
	}
	f.rows[token] = userID
	return nil
}

func (f *fakeLedger) IsValid(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.rows[token]
	return ok, nil
}

func (f *fakeLedger) RevokeAll(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for tok, id := range f.rows {
		if id == userID {
			delete(f.rows, tok)
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) count(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, id := range f.rows {
		if id == userID {
			n++
		}
	}
	return n
}
