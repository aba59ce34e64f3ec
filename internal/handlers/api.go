package handlers

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"tvbridge/internal/config"
	"tvbridge/internal/core"
	"tvbridge/internal/plex"
)

type APIHandler struct {
	provider *core.Provider
	snap     *config.Snapshot
	logger   zerolog.Logger
}

func NewAPIHandler(provider *core.Provider, snap *config.Snapshot, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		provider: provider,
		snap:     snap,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// containerResponse is the outer envelope every metadata answer rides in.
type containerResponse struct {
	MediaContainer *plex.MediaContainer `json:"MediaContainer"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func (h *APIHandler) respondContainer(w http.ResponseWriter, container *plex.MediaContainer) {
	respondJSON(w, http.StatusOK, containerResponse{MediaContainer: container})
}

func (h *APIHandler) respondProviderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidRatingKey), errors.Is(err, core.ErrUnsupported):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("upstream request failed")
		respondError(w, http.StatusBadGateway, "upstream catalog request failed")
	}
}

// GetMetadata resolves one entity by rating key.
func (h *APIHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["ratingKey"]

	country := r.URL.Query().Get("country")
	if country == "" {
		country = h.snap.Get().Provider.Country
	}
	opts := core.MetadataOptions{
		IncludeChildren: boolQuery(r, "includeChildren"),
		Country:         country,
	}

	container, err := h.provider.GetMetadata(r.Context(), key, opts)
	if err != nil {
		h.respondProviderError(w, err)
		return
	}
	h.respondContainer(w, container)
}

// GetChildren lists the seasons of a show or the episodes of a season.
func (h *APIHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	container, err := h.provider.GetChildren(r.Context(), mux.Vars(r)["ratingKey"], pageQuery(r))
	if err != nil {
		h.respondProviderError(w, err)
		return
	}
	h.respondContainer(w, container)
}

// GetGrandchildren lists every episode of a show.
func (h *APIHandler) GetGrandchildren(w http.ResponseWriter, r *http.Request) {
	container, err := h.provider.GetGrandchildren(r.Context(), mux.Vars(r)["ratingKey"], pageQuery(r))
	if err != nil {
		h.respondProviderError(w, err)
		return
	}
	h.respondContainer(w, container)
}

// GetImages lists the artwork of one entity.
func (h *APIHandler) GetImages(w http.ResponseWriter, r *http.Request) {
	container, err := h.provider.GetImages(r.Context(), mux.Vars(r)["ratingKey"])
	if err != nil {
		h.respondProviderError(w, err)
		return
	}
	h.respondContainer(w, container)
}

// Matches searches the upstream catalog for series.
func (h *APIHandler) Matches(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	container, err := h.provider.Match(r.Context(), title, year)
	if err != nil {
		h.respondProviderError(w, err)
		return
	}
	h.respondContainer(w, container)
}

// Manifest describes the provider to clients probing the root path.
func (h *APIHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	cfg := h.snap.Get()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"MediaProvider": map[string]interface{}{
			"identifier": cfg.Provider.Identifier,
			"title":      "tvbridge",
			"types":      []string{plex.TypeShow, plex.TypeSeason, plex.TypeEpisode},
			"Feature": []map[string]string{
				{"type": "metadata", "key": "/library/metadata"},
				{"type": "match", "key": "/library/matches"},
			},
		},
	})
}

func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pageQuery(r *http.Request) core.Page {
	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return core.Page{Start: start, Size: size}
}

func boolQuery(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
