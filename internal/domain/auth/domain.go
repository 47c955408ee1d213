package auth

import (
	"time"

	"github.com/NordCoder/Foodcart/internal/domain/user"
)

// RefreshTokenEntry is one outstanding refresh token. The ledger keeps only
// the token digest.
type RefreshTokenEntry struct {
	ID        int64
	UserID    string
	TokenHash string
	CreatedAt time.Time
}

// Principal is the identity proven by a verified bearer or refresh token.
// It is the only input authorization decisions may use.
type Principal struct {
	Email string
}

// DisplayProfile is the client-held profile cache from the encrypted user
// cookie. It is for display only and never proves identity.
type DisplayProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	ProfileImage *string `json:"profile_image"`
}

func DisplayProfileOf(p user.Profile) DisplayProfile {
	return DisplayProfile{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		ProfileImage: p.ProfileImage,
	}
}
