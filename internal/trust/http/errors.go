package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/internal/trust/store"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
)

// writeError maps err onto the public error taxonomy. The specific cause
// goes to the request log and never to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	if kind, ok := domain.KindOf(err); ok {
		log.Warn("request rejected", "kind", kind.String(), "cause", domain.CauseOf(err))

		switch kind {
		case domain.KindInvalidCredential:
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="invalid or expired token"`)
			trustsdk.ErrInvalidToken.WriteError(w)
		case domain.KindInsufficientRole:
			trustsdk.ErrInsufficientRole.WriteError(w)
		case domain.KindMalformedIdentifier:
			trustsdk.ErrNotFound.WriteError(w)
		case domain.KindDecryptionFailed:
			trustsdk.ErrDecryptionFailed.WriteError(w)
		case domain.KindCapabilityInvalid:
			trustsdk.ErrInvalidCapability.WriteError(w)
		case domain.KindExternalSignatureMismatch:
			trustsdk.ErrSignatureMismatch.WriteError(w)
		default:
			trustsdk.ErrServerError.WriteError(w)
		}
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		trustsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, httpx.ErrBadRequestBody):
		log.Warn("bad request body", slogx.Err(err))
		trustsdk.ErrInvalidRequest.WriteError(w)
	default:
		log.Error("request failed", slogx.Err(err))
		trustsdk.ErrServerError.WriteError(w)
	}
}
