// Package uploads accepts direct object writes authorized by an upload
// grant. It is the local-storage counterpart of a presigned PUT URL: the
// MinIO backend never routes upload bytes through this service, but the
// disk backend has no other door.
package uploads

import (
	"log"
	"net/http"

	"github.com/sitekit/service/internal/response"
	"github.com/sitekit/service/internal/storage"
)

// GrantVerifier validates an upload token and returns the object key it
// authorizes.
type GrantVerifier interface {
	VerifyGrant(token string) (string, error)
}

// Handler accepts grant-authorized direct uploads.
type Handler struct {
	store    storage.Storage
	verifier GrantVerifier
}

// NewHandler creates a new uploads Handler.
func NewHandler(store storage.Storage, verifier GrantVerifier) *Handler {
	return &Handler{store: store, verifier: verifier}
}

// Put godoc
//
//	@Summary		Direct object upload
//	@Description	Writes the request body to the object key authorized by the grant token. Partial writes are never visible.
//	@Tags			uploads
//	@Param			token	query	string	true	"upload grant token"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		401		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/uploads [put]
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "upload token required")
		return
	}

	key, err := h.verifier.VerifyGrant(token)
	if err != nil {
		response.Unauthorized(w, "invalid or expired upload grant")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.store.Upload(r.Context(), key, r.Body, r.ContentLength, contentType); err != nil {
		log.Printf("uploads: write to %q failed: %v", key, err)
		response.InternalError(w, "upload failed")
		return
	}

	response.OK(w, map[string]interface{}{"ok": true, "path": key})
}
