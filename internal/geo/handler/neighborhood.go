package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"georef/internal/geo/models"
	"georef/pkg/platform/httputil"
	"georef/pkg/requestcontext"
)

type NeighborhoodService interface {
	FindByCoordinates(ctx context.Context, longitude, latitude float64) (*models.Neighborhood, error)
}

// NeighborhoodNotFoundResponse echoes the queried point with the 404.
type NeighborhoodNotFoundResponse struct {
	Message string       `json:"message"`
	Context models.Point `json:"context"`
}

// Neighborhood serves point-in-polygon lookups.
type Neighborhood struct {
	service NeighborhoodService
	logger  *slog.Logger
}

func NewNeighborhood(service NeighborhoodService, logger *slog.Logger) *Neighborhood {
	return &Neighborhood{service: service, logger: logger}
}

// Register mounts GET /point on r.
func (h *Neighborhood) Register(r chi.Router) {
	r.Get("/point", h.handleFindByPoint)
}

func (h *Neighborhood) handleFindByPoint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	point, err := parsePoint(r.URL.Query())
	if err != nil {
		h.logger.WarnContext(ctx, "invalid point params",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	n, err := h.service.FindByCoordinates(ctx, point.Longitude, point.Latitude)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to locate neighborhood",
			"request_id", requestID,
			"longitude", point.Longitude,
			"latitude", point.Latitude,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if n == nil {
		httputil.WriteJSON(w, http.StatusNotFound, NeighborhoodNotFoundResponse{
			Message: "Neighborhood not found",
			Context: point,
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NeighborhoodMatch{Neighborhood: *n, Context: point})
}
