package trustsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to the trustgate service. Unauthenticated operations live
// on Client; operations that need a credential live on Session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is a Client bound to an access token.
type Session struct {
	client      *Client
	accessToken string
}

// NewSession binds accessToken to c. Tokens are minted out of band.
func (c *Client) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// AccessToken returns the bearer credential the session sends.
func (s *Session) AccessToken() string { return s.accessToken }
