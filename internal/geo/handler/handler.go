package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "georef/pkg/domain-errors"
	"georef/pkg/platform/httputil"
	"georef/pkg/requestcontext"
)

// Service is the read contract a Resource handler serves.
type Service[T any, F any] interface {
	FindAll(ctx context.Context, filter *F) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
}

// FilterParser builds a filter from query parameters. A nil filter with a nil
// error means no parameters were recognized.
type FilterParser[F any] func(q url.Values) (*F, error)

// Resource serves the listing and id lookup of one entity kind.
type Resource[T any, F any] struct {
	entity  string
	service Service[T, F]
	parse   FilterParser[F]
	logger  *slog.Logger
}

// NewResource constructs a handler. entity is the display name used in
// not-found messages, e.g. "City".
func NewResource[T any, F any](entity string, service Service[T, F], parse FilterParser[F], logger *slog.Logger) *Resource[T, F] {
	return &Resource[T, F]{
		entity:  entity,
		service: service,
		parse:   parse,
		logger:  logger,
	}
}

// Register mounts GET / and GET /{id} on r.
func (h *Resource[T, F]) Register(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
}

func (h *Resource[T, F]) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	filter, err := h.parse(r.URL.Query())
	if err != nil {
		h.logger.WarnContext(ctx, "invalid list params",
			"request_id", requestID,
			"entity", h.entity,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.FindAll(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records",
			"request_id", requestID,
			"entity", h.entity,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []T{}
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Resource[T, F]) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid id",
			"request_id", requestID,
			"entity", h.entity,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.FindByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to find record",
			"request_id", requestID,
			"entity", h.entity,
			"id", id,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if record == nil {
		httputil.WriteMessage(w, http.StatusNotFound, h.entity+" not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "id must be a positive integer")
	}
	return id, nil
}
