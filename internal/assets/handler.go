package assets

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/sitekit/service/internal/response"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing; larger
// files spill to temp files.
const maxMultipartMemory = 32 << 20

// Handler holds HTTP handlers for asset slot endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new assets Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type commitRequest struct {
	Path  string `json:"path"  example:"logo/logo.png"`
	Value string `json:"value" example:"https://cdn.example.com/assets/logo/logo.png"`
}

func (r commitRequest) raw() string {
	if r.Path != "" {
		return r.Path
	}
	return r.Value
}

type uploadRequest struct {
	Type string `json:"type" example:"image"`
	Ext  string `json:"ext"  example:"png"`
}

type slotStateBody struct {
	Version int     `json:"version" example:"3"`
	URL     *string `json:"url"`
}

type commitBody struct {
	OK      bool   `json:"ok"      example:"true"`
	Version int    `json:"version" example:"4"`
	URL     string `json:"url"     example:"https://cdn.example.com/assets/logo/logo.png"`
}

type backgroundStateBody struct {
	Version    int        `json:"version" example:"2"`
	Background Background `json:"background"`
}

type backgroundCommitBody struct {
	OK         bool       `json:"ok" example:"true"`
	Version    int        `json:"version" example:"3"`
	Background Background `json:"background"`
}

type showcaseListBody struct {
	Items []ShowcaseItem `json:"items"`
	// Kept for backwards compatibility: older clients read images only.
	Images []ShowcaseItem `json:"images"`
}

type showcaseUploadBody struct {
	OK       bool           `json:"ok"    example:"true"`
	Uploaded []ShowcaseItem `json:"uploaded"`
	Count    int            `json:"count" example:"2"`
	// Set when the batch failed partway: Uploaded then names the files
	// that did land.
	Error string `json:"error,omitempty"`
}

type showcaseDeleteBody struct {
	OK      bool   `json:"ok"      example:"true"`
	Deleted string `json:"deleted" example:"https://cdn.example.com/assets/showcase/1756500000-ab12cd34.mp4"`
}

// GetLogo godoc
//
//	@Summary		Get logo state
//	@Description	Returns the logo version counter and public URL. Degrades to version 0 instead of failing.
//	@Tags			assets
//	@Produce		json
//	@Success		200	{object}	slotStateBody
//	@Router			/assets/logo [get]
func (h *Handler) GetLogo(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.LogoState(r.Context())
	if err != nil {
		log.Printf("assets: logo state read failed: %v", err)
		response.OK(w, slotStateBody{Version: 0})
		return
	}
	response.OK(w, slotStateBody{Version: st.Version, URL: st.URL})
}

// CommitLogo godoc
//
//	@Summary		Commit a new logo
//	@Description	Records an uploaded object as the active logo and bumps the logo version.
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		commitRequest	true	"uploaded object path or public URL"
//	@Success		200		{object}	commitBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/assets/logo [post]
func (h *Handler) CommitLogo(w http.ResponseWriter, r *http.Request) {
	h.commitSlot(w, r, h.svc.CommitLogo, "failed to update logo")
}

// SignLogoUpload godoc
//
//	@Summary		Authorize a logo upload
//	@Description	Issues a short-lived authorization to upload the logo directly to object storage.
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		uploadRequest	true	"file extension"
//	@Success		200		{object}	storage.UploadGrant
//	@Failure		400		{object}	response.ErrorBody
//	@Router			/assets/logo/upload [post]
func (h *Handler) SignLogoUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	grant, err := h.svc.SignLogoUpload(r.Context(), req.Ext)
	if err != nil {
		h.writeError(w, err, "failed to create upload authorization")
		return
	}
	response.OK(w, grant)
}

// GetAudio godoc
//
//	@Summary		Get ambient audio state
//	@Tags			assets
//	@Produce		json
//	@Success		200	{object}	slotStateBody
//	@Router			/assets/audio [get]
func (h *Handler) GetAudio(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.AudioState(r.Context())
	if err != nil {
		log.Printf("assets: audio state read failed: %v", err)
		response.OK(w, slotStateBody{Version: 0})
		return
	}
	response.OK(w, slotStateBody{Version: st.Version, URL: st.URL})
}

// CommitAudio godoc
//
//	@Summary		Commit new ambient audio
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		commitRequest	true	"uploaded object path or public URL"
//	@Success		200		{object}	commitBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/assets/audio [post]
func (h *Handler) CommitAudio(w http.ResponseWriter, r *http.Request) {
	h.commitSlot(w, r, h.svc.CommitAudio, "failed to update audio")
}

// SignAudioUpload godoc
//
//	@Summary		Authorize an audio upload
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		uploadRequest	false	"file extension, defaults to m4a"
//	@Success		200		{object}	storage.UploadGrant
//	@Failure		400		{object}	response.ErrorBody
//	@Router			/assets/audio/upload [post]
func (h *Handler) SignAudioUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	// Body is optional; an empty or absent body means the default extension.
	_ = json.NewDecoder(r.Body).Decode(&req)

	grant, err := h.svc.SignAudioUpload(r.Context(), req.Ext)
	if err != nil {
		h.writeError(w, err, "failed to create upload authorization")
		return
	}
	response.OK(w, grant)
}

// GetBackground godoc
//
//	@Summary		Get background state
//	@Description	Returns the background version and rendered value. Degrades to the default color instead of failing.
//	@Tags			assets
//	@Produce		json
//	@Success		200	{object}	backgroundStateBody
//	@Router			/assets/background [get]
func (h *Handler) GetBackground(w http.ResponseWriter, r *http.Request) {
	version, bg, err := h.svc.BackgroundState(r.Context())
	if err != nil {
		log.Printf("assets: background state read failed: %v", err)
		response.OK(w, backgroundStateBody{
			Version:    0,
			Background: Background{Type: BackgroundColor, Value: DefaultBackgroundColor},
		})
		return
	}
	response.OK(w, backgroundStateBody{Version: version, Background: bg})
}

type backgroundCommitRequest struct {
	Type  BackgroundType `json:"type"  example:"color"`
	Value string         `json:"value" example:"#112233"`
}

// CommitBackground godoc
//
//	@Summary		Commit a new background
//	@Description	Switches the background to a color, image, or video and bumps the background version.
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		backgroundCommitRequest	true	"background type and value"
//	@Success		200		{object}	backgroundCommitBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/assets/background [post]
func (h *Handler) CommitBackground(w http.ResponseWriter, r *http.Request) {
	if !isJSONRequest(r) {
		response.BadRequest(w, "expected application/json")
		return
	}

	var req backgroundCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	version, bg, err := h.svc.CommitBackground(r.Context(), req.Type, req.Value)
	if err != nil {
		h.writeError(w, err, "failed to update background")
		return
	}
	response.OK(w, backgroundCommitBody{OK: true, Version: version, Background: bg})
}

// SignBackgroundUpload godoc
//
//	@Summary		Authorize a background upload
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		uploadRequest	true	"media kind (image or video) and file extension"
//	@Success		200		{object}	storage.UploadGrant
//	@Failure		400		{object}	response.ErrorBody
//	@Router			/assets/background/upload [post]
func (h *Handler) SignBackgroundUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	grant, err := h.svc.SignBackgroundUpload(r.Context(), BackgroundType(req.Type), req.Ext)
	if err != nil {
		h.writeError(w, err, "failed to create upload authorization")
		return
	}
	response.OK(w, grant)
}

// ListShowcase godoc
//
//	@Summary		List showcase media
//	@Description	Enumerates gallery items newest-first. Degrades to empty lists instead of failing.
//	@Tags			showcase
//	@Produce		json
//	@Success		200	{object}	showcaseListBody
//	@Router			/assets/showcase [get]
func (h *Handler) ListShowcase(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListShowcase(r.Context())
	if err != nil {
		log.Printf("assets: showcase listing failed: %v", err)
		response.OK(w, showcaseListBody{Items: []ShowcaseItem{}, Images: []ShowcaseItem{}})
		return
	}

	images := make([]ShowcaseItem, 0, len(items))
	for _, it := range items {
		if it.Type == MediaImage {
			images = append(images, it)
		}
	}
	response.OK(w, showcaseListBody{Items: items, Images: images})
}

// UploadShowcase godoc
//
//	@Summary		Upload showcase media
//	@Description	Accepts a multipart batch of images and videos. The whole batch is validated before anything is stored.
//	@Tags			showcase
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			files	formData	file	true	"media files"
//	@Success		200		{object}	showcaseUploadBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	showcaseUploadBody	"error set; uploaded lists the files that landed before the failure"
//	@Router			/assets/showcase [post]
func (h *Handler) UploadShowcase(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "expected multipart form data")
		return
	}

	files := r.MultipartForm.File["files"]
	uploaded, err := h.svc.UploadShowcase(r.Context(), files)
	if err != nil {
		// A mid-batch storage failure leaves the earlier files stored;
		// report them so the client knows which ones landed.
		if len(uploaded) > 0 {
			log.Printf("assets: showcase upload failed partway: %v", err)
			response.JSON(w, http.StatusInternalServerError, showcaseUploadBody{
				Uploaded: uploaded,
				Count:    len(uploaded),
				Error:    "failed to upload files",
			})
			return
		}
		h.writeError(w, err, "failed to upload files")
		return
	}
	response.OK(w, showcaseUploadBody{OK: true, Uploaded: uploaded, Count: len(uploaded)})
}

// DeleteShowcase godoc
//
//	@Summary		Delete a showcase item
//	@Tags			showcase
//	@Produce		json
//	@Security		BearerAuth
//	@Param			url	query		string	true	"item URL or storage path"
//	@Success		200	{object}	showcaseDeleteBody
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/assets/showcase [delete]
func (h *Handler) DeleteShowcase(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		response.BadRequest(w, "no media URL provided")
		return
	}

	if _, err := h.svc.DeleteShowcase(r.Context(), raw); err != nil {
		h.writeError(w, err, "failed to delete media")
		return
	}
	// Echo the identifier exactly as the caller sent it, not the canonical
	// storage key it resolved to.
	response.OK(w, showcaseDeleteBody{OK: true, Deleted: raw})
}

func (h *Handler) commitSlot(w http.ResponseWriter, r *http.Request, commit func(ctx context.Context, raw string) (*CommitResult, error), failMsg string) {
	if !isJSONRequest(r) {
		response.BadRequest(w, "expected application/json")
		return
	}

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	res, err := commit(r.Context(), req.raw())
	if err != nil {
		h.writeError(w, err, failMsg)
		return
	}
	response.OK(w, commitBody{OK: true, Version: res.Version, URL: res.URL})
}

// writeError maps service errors onto the wire: validation failures are 400
// with their message, everything else is a 500 with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, err error, failMsg string) {
	if errors.Is(err, ErrInvalidInput) {
		response.BadRequest(w, err.Error())
		return
	}
	log.Printf("assets: %s: %v", failMsg, err)
	response.InternalError(w, failMsg)
}

func isJSONRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
