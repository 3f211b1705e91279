package trustsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// SignedURL asks for a signed download path for the document with the
// given obfuscated id. ttlSeconds <= 0 uses the server default.
func (s *Session) SignedURL(ctx context.Context, documentID string, ttlSeconds int) (*SignedURLResponse, error) {
	path := "/v1/documents/" + url.PathEscape(documentID) + "/signed-url"
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, SignedURLRequest{TTLSeconds: ttlSeconds})
	if err != nil {
		return nil, err
	}

	var out SignedURLResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches a document through a signed path as returned in
// SignedURLResponse.URL. No credential is sent: the capability is the
// authorization.
func (c *Client) Download(ctx context.Context, signedPath string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, signedPath, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}
	return body, nil
}

// ListDocuments returns the public ids of the session owner's documents.
func (s *Session) ListDocuments(ctx context.Context) ([]string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/documents", nil)
	if err != nil {
		return nil, err
	}

	var out DocumentsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Documents, nil
}
