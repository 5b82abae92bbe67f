package profileshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paystub/internal/domain/export"
	"paystub/internal/domain/paystub"
	"paystub/internal/domain/profile"
	"paystub/internal/platform/metrics"
	"paystub/internal/transport/http/api"
	paystubhandler "paystub/internal/transport/http/handlers/paystub"
	"paystub/internal/transport/http/middleware"
	"paystub/internal/transport/http/shared"
)

const (
	defaultListLimit = 25
	maxListLimit     = 100
)

type Handler struct {
	Service  *profile.Service
	Metrics  *metrics.Collector
	MaxPages int
}

func NewHandler(service *profile.Service, collector *metrics.Collector, maxPages int) *Handler {
	return &Handler{Service: service, Metrics: collector, MaxPages: maxPages}
}

func (h *Handler) RegisterRoutes(r chi.Router, exportLimit func(http.Handler) http.Handler) {
	if exportLimit == nil {
		exportLimit = func(next http.Handler) http.Handler { return next }
	}
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{profileID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/statement", h.handleStatement)
			r.With(exportLimit).Get("/export", h.handleExport)
		})
	})
}

type profilePayload struct {
	Name   string                  `json:"name" validate:"required,max=120"`
	Config shared.PayConfigPayload `json:"config"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, issues := shared.ParsePagination(r, defaultListLimit, maxListLimit)
	if len(issues) > 0 {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), issues)
		return
	}
	result, err := h.Service.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		slog.Error("list profiles failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "profile_list_failed", "failed to list profiles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	p, err := h.Service.Create(r.Context(), payload.Name, payload.config)
	if err != nil {
		writeProfileError(w, r, err, "profile_create_failed")
		return
	}
	api.Created(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		writeProfileError(w, r, err, "profile_get_failed")
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	p, err := h.Service.Update(r.Context(), chi.URLParam(r, "profileID"), payload.Name, payload.config)
	if err != nil {
		writeProfileError(w, r, err, "profile_update_failed")
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "profileID")); err != nil {
		writeProfileError(w, r, err, "profile_delete_failed")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	periodsBack, ok := shared.QueryInt(r, "periodsBack", 0)
	if !ok || periodsBack < 0 {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{
			Field:  "periodsBack",
			Reason: "must be a non-negative integer",
		}})
		return
	}
	result, err := h.Service.Statement(r.Context(), chi.URLParam(r, "profileID"), periodsBack)
	if err != nil {
		writeProfileError(w, r, err, "profile_statement_failed")
		return
	}
	h.Metrics.StatementsComputed("profile_statement", 1)
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	count, ok := shared.QueryInt(r, "count", 1)
	if !ok || count < 1 || (h.MaxPages > 0 && count > h.MaxPages) {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{
			Field:  "count",
			Reason: countReason(h.MaxPages),
		}})
		return
	}
	doc, err := h.Service.Export(r.Context(), chi.URLParam(r, "profileID"), count)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			writeProfileError(w, r, err, "profile_export_failed")
			return
		}
		paystubhandler.WriteExportError(w, r, err)
		return
	}
	h.Metrics.StatementsComputed("profile_export", doc.Pages)
	h.Metrics.PagesExported(doc.Pages)
	paystubhandler.WritePDF(w, doc)
}

type decodedProfile struct {
	profilePayload
	config paystub.PayConfiguration
}

func decodeProfile(w http.ResponseWriter, r *http.Request) (decodedProfile, bool) {
	requestID := middleware.GetRequestID(r.Context())
	var payload profilePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.InvalidPayload(w, requestID)
		return decodedProfile{}, false
	}
	v := shared.NewValidator()
	v.Struct(payload)
	cfg := payload.Config.ToConfiguration(v, "config.")
	if v.Reject(w, requestID) {
		return decodedProfile{}, false
	}
	return decodedProfile{profilePayload: payload, config: cfg}, true
}

func writeProfileError(w http.ResponseWriter, r *http.Request, err error, code string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, profile.ErrNotFound):
		api.NotFound(w, "pay profile not found", requestID)
	case errors.Is(err, profile.ErrInvalidName):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "name", Reason: err.Error()}})
	case errors.Is(err, export.ErrInvalidCount), errors.Is(err, export.ErrTooManyPages):
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidCount, err.Error(), requestID)
	default:
		slog.Error("profile request failed", "err", err, "code", code, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, code, "request failed", requestID)
	}
}

func countReason(maxPages int) string {
	if maxPages > 0 {
		return "must be between 1 and " + strconv.Itoa(maxPages)
	}
	return "must be at least 1"
}
