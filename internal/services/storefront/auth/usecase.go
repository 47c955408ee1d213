package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/NordCoder/Foodcart/internal/apperr"
	authx "github.com/NordCoder/Foodcart/internal/auth"
	domainauth "github.com/NordCoder/Foodcart/internal/domain/auth"
	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var authEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_auth_events_total",
	Help: "Login, signup and logout outcomes.",
}, []string{"event", "result"})

type Tokens interface {
	IssueBearer(email string) (string, error)
	IssueRefresh(email string) (string, error)
	ParseBearer(token string) (string, error)
	ParseRefresh(token string) (string, error)
}

type Usecase struct {
	users  user.Repo
	ledger domainauth.Ledger
	tokens Tokens
	newID  func() string
}

func NewUsecase(users user.Repo, ledger domainauth.Ledger, tokens Tokens) *Usecase {
	return &Usecase{users: users, ledger: ledger, tokens: tokens, newID: uuid.NewString}
}

// Session is what a successful login hands to the transport.
type Session struct {
	Profile user.Profile
	Bearer  string
	Refresh string
}

type SignUpInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (in *SignUpInput) normalize() error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	switch {
	case in.FullName == "":
		return apperr.BadRequest("Full name is required!")
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return apperr.BadRequest("A valid email is required!")
	case in.PhoneNumber == "":
		return apperr.BadRequest("Phone number is required!")
	case in.Password == "":
		return apperr.BadRequest("Password is required!")
	}
	return nil
}

func notRegistered(id user.Identifier) error {
	if id.Kind() == user.KindEmail {
		return apperr.New(http.StatusNotFound, apperr.CodeEmailNotRegistered, "Email not registered!")
	}
	return apperr.New(http.StatusNotFound, apperr.CodePhoneNotRegistered, "Phone number not registered!")
}

// Verify looks the user up by email or phone and checks the password.
func (u *Usecase) Verify(ctx context.Context, id user.Identifier, secret string) (*user.User, error) {
	if id.IsZero() || id.Value() == "" || secret == "" {
		return nil, apperr.BadRequest("Credentials are required!")
	}
	rec, err := u.users.GetByIdentifier(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, notRegistered(id)
		}
		return nil, apperr.Unexpected(err)
	}
	if err := authx.CheckPassword(rec.Password, secret); err != nil {
		if errors.Is(err, authx.ErrPasswordMismatch) {
			return nil, apperr.New(http.StatusUnauthorized, apperr.CodeInvalidPassword, "Invalid password!")
		}
		return nil, apperr.Unexpected(err)
	}
	return rec, nil
}

// Login verifies credentials, mints both tokens and records the refresh token.
// Nothing is returned unless the ledger insert succeeded.
func (u *Usecase) Login(ctx context.Context, id user.Identifier, secret string) (*Session, error) {
	ctx, span := otel.Tracer("storefront.auth").Start(ctx, "auth.login")
	defer span.End()

	rec, err := u.Verify(ctx, id, secret)
	if err != nil {
		authEvents.WithLabelValues("login", "rejected").Inc()
		return nil, err
	}
	bearer, err := u.tokens.IssueBearer(rec.Email)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	refresh, err := u.tokens.IssueRefresh(rec.Email)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if err := u.ledger.Record(ctx, rec.ID, refresh); err != nil {
		span.RecordError(err)
		authEvents.WithLabelValues("login", "error").Inc()
		return nil, apperr.Unexpected(err)
	}
	authEvents.WithLabelValues("login", "ok").Inc()
	return &Session{Profile: rec.Profile(), Bearer: bearer, Refresh: refresh}, nil
}

func (u *Usecase) SignUp(ctx context.Context, in SignUpInput) (*user.Profile, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	exists, err := u.users.Exists(ctx, user.Email(in.Email))
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if exists {
		authEvents.WithLabelValues("signup", "conflict").Inc()
		return nil, emailExists()
	}
	exists, err = u.users.Exists(ctx, user.Phone(in.PhoneNumber))
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if exists {
		authEvents.WithLabelValues("signup", "conflict").Inc()
		return nil, phoneExists()
	}

	hash, err := authx.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	rec := &user.User{
		ID:          u.newID(),
		Name:        in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    hash,
		CreatedAt:   time.Now().UTC(),
	}
	if err := u.users.Create(ctx, rec); err != nil {
		var ce *postgres.ConflictError
		if errors.As(err, &ce) {
			authEvents.WithLabelValues("signup", "conflict").Inc()
			if ce.Constraint == postgres.ConstraintUserPhone {
				return nil, phoneExists()
			}
			return nil, emailExists()
		}
		return nil, apperr.Unexpected(err)
	}
	authEvents.WithLabelValues("signup", "ok").Inc()
	p := rec.Profile()
	return &p, nil
}

func emailExists() error {
	return apperr.New(http.StatusConflict, apperr.CodeEmailExists, "User with the provided email already exists!")
}

func phoneExists() error {
	return apperr.New(http.StatusConflict, apperr.CodePhoneExists, "User with the provided phone number already exists!")
}

// Logout revokes every refresh token of the user, ending all sessions.
func (u *Usecase) Logout(ctx context.Context, userID string) (int64, error) {
	n, err := u.ledger.RevokeAll(ctx, userID)
	if err != nil {
		authEvents.WithLabelValues("logout", "error").Inc()
		return 0, apperr.Unexpected(err)
	}
	authEvents.WithLabelValues("logout", "ok").Inc()
	return n, nil
}

// Authenticate accepts a bearer token without touching the ledger.
func (u *Usecase) Authenticate(bearer string) (domainauth.Principal, bool) {
	if bearer == "" {
		return domainauth.Principal{}, false
	}
	email, err := u.tokens.ParseBearer(bearer)
	if err != nil {
		return domainauth.Principal{}, false
	}
	return domainauth.Principal{Email: email}, true
}

// Renew turns a ledger-listed refresh token into a fresh bearer for the email
// the refresh token was issued to.
func (u *Usecase) Renew(ctx context.Context, refresh string) (domainauth.Principal, string, error) {
	if refresh == "" {
		return domainauth.Principal{}, "", apperr.Unauthorized()
	}
	email, err := u.tokens.ParseRefresh(refresh)
	if err != nil {
		return domainauth.Principal{}, "", apperr.Forbidden()
	}
	ok, err := u.ledger.IsValid(ctx, refresh)
	if err != nil {
		return domainauth.Principal{}, "", apperr.Unexpected(err)
	}
	if !ok {
		return domainauth.Principal{}, "", apperr.Forbidden()
	}
	bearer, err := u.tokens.IssueBearer(email)
	if err != nil {
		return domainauth.Principal{}, "", apperr.Unexpected(err)
	}
	return domainauth.Principal{Email: email}, bearer, nil
}
