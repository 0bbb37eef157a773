package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

type Handler struct {
	reportService   *usecase.ReportService
	resolverService *usecase.ResolverService
	profileRepo     identity.Repository
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	reportService *usecase.ReportService,
	resolverService *usecase.ResolverService,
	profileRepo identity.Repository,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		reportService:   reportService,
		resolverService: resolverService,
		profileRepo:     profileRepo,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status":    "ok",
		"demo_mode": h.resolverService.DemoMode(),
	})
}
