package httpx

import (
	"net/http"
	"strings"
	"time"
)

// Cookie names shared with the browser clients.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieConfig controls the attributes of the auth cookies.
type CookieConfig struct {
	Secure bool
	Domain string
}

// TokenFromRequest returns the bearer credential, preferring the
// access_token cookie over the Authorization header.
func TokenFromRequest(r *http.Request) (string, bool) {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value, true
	}

	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RefreshTokenFromRequest reads the refresh_token cookie. For login and
// refresh handlers in collaborating services; this service has none.
func RefreshTokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(RefreshTokenCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// SetAuthCookies writes both token cookies as HttpOnly, SameSite=Lax.
// Called by collaborating services after login; this service only clears them.
func SetAuthCookies(w http.ResponseWriter, cfg CookieConfig, access string, accessExp time.Time, refresh string, refreshExp time.Time) {
	http.SetCookie(w, authCookie(cfg, AccessTokenCookie, access, accessExp))
	if refresh != "" {
		http.SetCookie(w, authCookie(cfg, RefreshTokenCookie, refresh, refreshExp))
	}
}

// ClearAuthCookies expires both token cookies.
func ClearAuthCookies(w http.ResponseWriter, cfg CookieConfig) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := authCookie(cfg, name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func authCookie(cfg CookieConfig, name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  exp,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
