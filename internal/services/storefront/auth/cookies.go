package auth

import (
	"net/http"
	"time"
)

const (
	CookieBearer  = "token"
	CookieRefresh = "refreshToken"
	CookieProfile = "user"
)

type CookieConfig struct {
	BearerTTL  time.Duration
	SessionTTL time.Duration
	// Secure forces the Secure attribute even on plain HTTP requests.
	Secure bool
}

func (c CookieConfig) secure(r *http.Request) bool {
	return c.Secure || r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func (c CookieConfig) set(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: httpOnly,
		Secure:   c.secure(r),
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) setBearer(w http.ResponseWriter, r *http.Request, token string) {
	c.set(w, r, CookieBearer, token, c.BearerTTL, true)
}

func (c CookieConfig) setSession(w http.ResponseWriter, r *http.Request, refresh, sealedProfile string) {
	c.set(w, r, CookieRefresh, refresh, c.SessionTTL, true)
	// readable by the frontend for display
	c.set(w, r, CookieProfile, sealedProfile, c.SessionTTL, false)
}

func (c CookieConfig) clear(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{CookieBearer, CookieRefresh, CookieProfile} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: name != CookieProfile,
			Secure:   c.secure(r),
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
