package reviews

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sitekit/service/internal/response"
)

// Handler holds HTTP handlers for review endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new reviews Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type addRequest struct {
	Name    string  `json:"name"    example:"Ada"`
	Label   string  `json:"label"   example:"Verified buyer"`
	Rating  float64 `json:"rating"  example:"5"`
	Comment string  `json:"comment" example:"Great!"`
}

type deleteRequest struct {
	ReviewID string `json:"reviewId" example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
}

type addBody struct {
	OK       bool   `json:"ok"       example:"true"`
	Version  int    `json:"version"  example:"8"`
	ReviewID string `json:"reviewId" example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
}

type deleteBody struct {
	OK      bool `json:"ok"      example:"true"`
	Version int  `json:"version" example:"9"`
}

type listBody struct {
	Version int      `json:"version" example:"9"`
	Reviews []Review `json:"reviews"`
}

// Add godoc
//
//	@Summary		Add a review
//	@Description	Stores a review and bumps the reviews version. Rating is clamped into [1, 5].
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		addRequest	true	"review fields"
//	@Success		200		{object}	addBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/assets/reviews [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	res, err := h.svc.Add(r.Context(), req.Name, req.Label, req.Rating, req.Comment)
	if err != nil {
		h.writeError(w, err, "failed to add review")
		return
	}
	response.OK(w, addBody{OK: true, Version: res.Version, ReviewID: res.ReviewID})
}

// Delete godoc
//
//	@Summary		Delete a review
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		deleteRequest	true	"review id"
//	@Success		200		{object}	deleteBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/assets/reviews [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	version, err := h.svc.Remove(r.Context(), req.ReviewID)
	if err != nil {
		h.writeError(w, err, "failed to delete review")
		return
	}
	response.OK(w, deleteBody{OK: true, Version: version})
}

// List godoc
//
//	@Summary		List reviews
//	@Description	Returns all reviews newest-first with the version counter. Degrades to an empty list instead of failing.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{object}	listBody
//	@Router			/assets/reviews [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("reviews: listing failed: %v", err)
		response.OK(w, listBody{Version: 0, Reviews: []Review{}})
		return
	}
	response.OK(w, listBody{Version: res.Version, Reviews: res.Reviews})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, failMsg string) {
	if errors.Is(err, ErrInvalidInput) {
		response.BadRequest(w, err.Error())
		return
	}
	log.Printf("reviews: %s: %v", failMsg, err)
	response.InternalError(w, failMsg)
}
