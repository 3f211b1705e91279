package trustsdk

import (
	"context"
	"net/http"
)

// SealParams encrypts payload into an opaque token.
func (s *Session) SealParams(ctx context.Context, payload map[string]any) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/params/seal", SealRequest{Payload: payload})
	if err != nil {
		return "", err
	}

	var out SealResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Token, nil
}

// OpenParams decrypts a token produced by SealParams.
func (s *Session) OpenParams(ctx context.Context, token string) (map[string]any, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/params/open", OpenRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var out OpenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Payload, nil
}
