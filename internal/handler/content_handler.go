package handler

import (
	"encoding/json"
	"net/http"

	"agri-pos/internal/model"
	"agri-pos/internal/service"

	"github.com/rs/zerolog"
)

// ContentHandler handles shop metadata and advisory content requests.
type ContentHandler struct {
	service service.ContentService
	logger  zerolog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(service service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.With().Str("handler", "content").Logger(),
	}
}

// Meta handles GET /api/meta requests.
func (h *ContentHandler) Meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Meta())
}

// ListPests handles GET /api/pests requests.
func (h *ContentHandler) ListPests(w http.ResponseWriter, r *http.Request) {
	pests := h.service.SeasonPests()
	if pests == nil {
		pests = []model.SeasonPest{}
	}
	writeJSON(w, http.StatusOK, pests)
}

// CreatePest handles POST /api/pests requests.
func (h *ContentHandler) CreatePest(w http.ResponseWriter, r *http.Request) {
	var pest model.SeasonPest
	if err := json.NewDecoder(r.Body).Decode(&pest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := h.service.CreateSeasonPest(r.Context(), &pest); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, pest)
}

// UpdatePest handles PUT /api/pests/{id} requests.
func (h *ContentHandler) UpdatePest(w http.ResponseWriter, r *http.Request, id string) {
	var pest model.SeasonPest
	if err := json.NewDecoder(r.Body).Decode(&pest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	pest.ID = id
	if err := h.service.UpdateSeasonPest(r.Context(), &pest); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, pest)
}

// DeletePest handles DELETE /api/pests/{id} requests.
func (h *ContentHandler) DeletePest(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteSeasonPest(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListArticles handles GET /api/articles requests.
func (h *ContentHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := h.service.Articles()
	if articles == nil {
		articles = []model.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// CreateArticle handles POST /api/articles requests.
func (h *ContentHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var article model.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := h.service.CreateArticle(r.Context(), &article); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

// UpdateArticle handles PUT /api/articles/{id} requests.
func (h *ContentHandler) UpdateArticle(w http.ResponseWriter, r *http.Request, id string) {
	var article model.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	article.ID = id
	if err := h.service.UpdateArticle(r.Context(), &article); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// DeleteArticle handles DELETE /api/articles/{id} requests.
func (h *ContentHandler) DeleteArticle(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
