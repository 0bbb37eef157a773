package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

type searchPlayersRequest struct {
	Query string `json:"query" validate:"required,max=512"`
}

// SearchPlayers runs the full pipeline for a free-form query posted in
// the request body.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	var req searchPlayersRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.buildReport(w, r, req.Query)
}

// GetReport is the query-string variant of SearchPlayers.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	h.buildReport(w, r, r.URL.Query().Get("query"))
}

func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request, query string) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.buildReport")
	defer span.End()

	report, err := h.reportService.Build(ctx, query)
	if err != nil {
		var notFound *usecase.NotFoundSuggestions
		if errors.As(err, &notFound) {
			h.logger.InfoContext(ctx, "identity not found",
				"key", notFound.Key,
				"suggestions", len(notFound.Suggestions),
			)
			writeNotFoundWithSuggestions(ctx, w, notFound)
			return
		}
		h.logger.WarnContext(ctx, "build report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportToDTO(report))
}

// GetProfile reads one recorded resolution from the history store. It
// never triggers an upstream lookup.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	faceitID := strings.TrimSpace(r.PathValue("faceitID"))
	if faceitID == "" {
		writeError(ctx, w, fmt.Errorf("%w: faceit id is required", usecase.ErrInvalidInput))
		return
	}

	profile, err := h.profileRepo.GetByFaceitID(ctx, faceitID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "faceit_id", faceitID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

// ListProfiles returns the most recently recorded resolutions.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProfiles")
	defer span.End()

	profiles, err := h.profileRepo.List(ctx, 50)
	if err != nil {
		h.logger.WarnContext(ctx, "list profiles failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]profileDTO, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, profileToDTO(profile))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
