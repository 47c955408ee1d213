package user

import (
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	Password     string
	ProfileImage *string
	CreatedAt    time.Time
}

// Profile is the user as shown to its owner: no password hash, no timestamps.
type Profile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	ProfileImage *string `json:"profile_image"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		ProfileImage: u.ProfileImage,
	}
}

type IdentifierKind int

const (
	KindEmail IdentifierKind = iota + 1
	KindPhone
)

func (k IdentifierKind) String() string {
	switch k {
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone_number"
	default:
		return "unknown"
	}
}

// Identifier is either an email or a phone number. The zero value is invalid.
type Identifier struct {
	kind  IdentifierKind
	value string
}

func Email(v string) Identifier { return Identifier{kind: KindEmail, value: v} }
func Phone(v string) Identifier { return Identifier{kind: KindPhone, value: v} }

// IdentifierFromLogin maps the login form's isEmail flag onto an Identifier.
func IdentifierFromLogin(value string, isEmail bool) Identifier {
	if isEmail {
		return Email(value)
	}
	return Phone(value)
}

func (i Identifier) Kind() IdentifierKind { return i.kind }
func (i Identifier) Value() string        { return i.value }
func (i Identifier) IsZero() bool         { return i.kind == 0 }
