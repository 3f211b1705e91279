package http

import (
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/internal/trust/store"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
)

// MaxSignedURLTTL caps caller-requested link lifetimes.
const MaxSignedURLTTL = 24 * time.Hour

// DocumentsHandler serves document listing, link minting and capability
// downloads. A document's public id packs (owner id, document id).
type DocumentsHandler struct {
	Identifiers  *service.IdentifierService
	Capabilities *service.CapabilityService
	Authorizer   *service.Authorizer
	Documents    store.Documents
}

// decodeRef unpacks a public document id.
func (h *DocumentsHandler) decodeRef(publicID string) (owner, doc int64, err error) {
	ids, err := h.Identifiers.DecodeN(publicID, 2)
	if err != nil {
		return 0, 0, err
	}
	return ids[0], ids[1], nil
}

// HandleList lists the caller's documents.
//
//	@Summary		List documents
//	@Description	Returns the public ids of the caller's documents.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	trustsdk.DocumentsResponse	"public document ids"
//	@Failure		401	{object}	trustsdk.ErrorResponse		"Invalid or missing access token"
//	@Router			/v1/documents [get].
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		trustsdk.ErrInvalidToken.WriteError(w)
		return
	}

	ids, err := h.Documents.List(r.Context(), p.SubjectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := trustsdk.DocumentsResponse{Documents: make([]string, 0, len(ids))}
	for _, id := range ids {
		publicID, err := h.Identifiers.EncodeMany(p.SubjectID, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out.Documents = append(out.Documents, publicID)
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSignedURL mints a time limited download link.
//
//	@Summary		Create a signed download link
//	@Description	Returns a download path carrying an expiring capability. Only the document owner or an admin may mint one.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Public document id"
//	@Param			request	body		trustsdk.SignedURLRequest	false	"Optional lifetime"
//	@Success		200		{object}	trustsdk.SignedURLResponse	"Signed path"
//	@Failure		400		{object}	trustsdk.ErrorResponse		"Invalid request"
//	@Failure		401		{object}	trustsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	trustsdk.ErrorResponse		"Not the owner"
//	@Failure		404		{object}	trustsdk.ErrorResponse		"Document not found"
//	@Router			/v1/documents/{id}/signed-url [post].
func (h *DocumentsHandler) HandleSignedURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := httpx.PrincipalFrom(ctx)
	if !ok {
		trustsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req trustsdk.SignedURLRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}
	// Bound before converting so huge values cannot wrap the Duration.
	if req.TTLSeconds < 0 || req.TTLSeconds > int(MaxSignedURLTTL/time.Second) {
		trustsdk.NewAPIError(http.StatusBadRequest, trustsdk.ErrorCodeInvalidRequest,
			fmt.Sprintf("ttl_seconds must be between 0 and %d", int(MaxSignedURLTTL.Seconds()))).WriteError(w)
		return
	}

	ttl := time.Duration(req.TTLSeconds) * time.Second

	publicID := r.PathValue("id")
	owner, doc, err := h.decodeRef(publicID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	caller := domain.Identity{SubjectID: p.SubjectID, Role: p.Role}
	if err := h.Authorizer.RequireOwnerOrAdmin(caller, owner); err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.Documents.Open(ctx, owner, doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = d.Content.Close()

	path, c, err := h.Capabilities.DocumentDownloadPath(publicID, ttl)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("download link issued", "owner", owner, "doc", doc, "expires", c.Expires)

	httpx.WriteJSON(w, http.StatusOK, trustsdk.SignedURLResponse{
		URL:       path,
		Expires:   c.Expires,
		Signature: c.Signature,
		ExpiresAt: c.ExpiresAt().UTC(),
	})
}

// HandleDownload streams a document to the holder of a valid capability.
//
//	@Summary		Download a document
//	@Description	Streams the document if expires and signature form a valid capability for this id.
//	@Description	Expired and forged links get the same 403.
//	@Tags			Documents
//	@Produce		octet-stream
//	@Param			id			path		string	true	"Public document id"
//	@Param			expires		query		int		true	"Unix expiry"
//	@Param			signature	query		string	true	"Hex HMAC-SHA256 signature"
//	@Success		200			{file}		file	"Document content"
//	@Failure		403			{object}	trustsdk.ErrorResponse	"Invalid or expired link"
//	@Failure		404			{object}	trustsdk.ErrorResponse	"Document not found"
//	@Router			/v1/documents/download/{id} [get].
func (h *DocumentsHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	publicID := r.PathValue("id")

	if err := h.Capabilities.VerifyQuery(service.DocumentKind, publicID, r.URL.Query(), nil); err != nil {
		writeError(w, r, err)
		return
	}

	owner, doc, err := h.decodeRef(publicID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.Documents.Open(ctx, owner, doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer d.Content.Close()

	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": publicID}))
	http.ServeContent(w, r, "", d.ModTime, d.Content)
}
