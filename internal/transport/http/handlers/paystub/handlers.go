package paystubhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paystub/internal/domain/export"
	"paystub/internal/domain/paystub"
	"paystub/internal/domain/statement"
	"paystub/internal/platform/metrics"
	"paystub/internal/transport/http/api"
	"paystub/internal/transport/http/middleware"
	"paystub/internal/transport/http/shared"
)

type Handler struct {
	Exporter *export.Exporter
	Metrics  *metrics.Collector
	MaxPages int
	Now      func() time.Time
}

func NewHandler(exporter *export.Exporter, collector *metrics.Collector, maxPages int) *Handler {
	return &Handler{Exporter: exporter, Metrics: collector, MaxPages: maxPages, Now: time.Now}
}

// RegisterRoutes mounts the stateless statement endpoints. exportLimit, when
// set, guards the PDF endpoint only.
func (h *Handler) RegisterRoutes(r chi.Router, exportLimit func(http.Handler) http.Handler) {
	r.Route("/paystub", func(r chi.Router) {
		r.Get("/sample", h.handleSample)
		r.Get("/deduction-presets", h.handlePresets)
		r.Post("/compute", h.handleCompute)
		r.Post("/preview", h.handlePreview)
		if exportLimit != nil {
			r.With(exportLimit).Post("/export", h.handleExport)
		} else {
			r.Post("/export", h.handleExport)
		}
	})
}

type statementRequest struct {
	Config      shared.PayConfigPayload `json:"config"`
	PeriodsBack int                     `json:"periodsBack" validate:"gte=0"`
}

type exportRequest struct {
	Config shared.PayConfigPayload `json:"config"`
	Count  int                     `json:"count" validate:"gte=1"`
}

func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	api.Success(w, paystub.SampleConfiguration(h.Now()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	api.Success(w, paystub.DeductionPresets(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	cfg, periodsBack, ok := h.decodeStatement(w, r)
	if !ok {
		return
	}
	stub := paystub.Compute(cfg, periodsBack)
	h.Metrics.StatementsComputed("compute", 1)
	api.Success(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	cfg, periodsBack, ok := h.decodeStatement(w, r)
	if !ok {
		return
	}
	stub := paystub.Compute(cfg, periodsBack)
	h.Metrics.StatementsComputed("preview", 1)
	api.Success(w, statement.Build(cfg, stub), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload exportRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.InvalidPayload(w, requestID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	cfg := payload.Config.ToConfiguration(v, "config.")
	if v.Reject(w, requestID) {
		return
	}

	if err := export.CheckCount(payload.Count, h.MaxPages); err != nil {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{
			Field:  "count",
			Reason: "must be at most " + strconv.Itoa(h.MaxPages),
		}})
		return
	}

	doc, err := h.Exporter.Render(r.Context(), cfg, payload.Count)
	if err != nil {
		WriteExportError(w, r, err)
		return
	}
	h.Metrics.StatementsComputed("export", doc.Pages)
	h.Metrics.PagesExported(doc.Pages)
	WritePDF(w, doc)
}

func (h *Handler) decodeStatement(w http.ResponseWriter, r *http.Request) (paystub.PayConfiguration, int, bool) {
	requestID := middleware.GetRequestID(r.Context())
	var payload statementRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.InvalidPayload(w, requestID)
		return paystub.PayConfiguration{}, 0, false
	}
	v := shared.NewValidator()
	v.Struct(payload)
	cfg := payload.Config.ToConfiguration(v, "config.")
	if v.Reject(w, requestID) {
		return paystub.PayConfiguration{}, 0, false
	}
	return cfg, payload.PeriodsBack, true
}

// WritePDF sends doc as a download.
func WritePDF(w http.ResponseWriter, doc export.Document) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	w.Header().Set("X-Statement-Pages", strconv.Itoa(doc.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Bytes); err != nil {
		slog.Warn("write pdf failed", "err", err)
	}
}

// WriteExportError maps exporter failures onto the envelope.
func WriteExportError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, export.ErrInvalidCount), errors.Is(err, export.ErrTooManyPages):
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidCount, err.Error(), requestID)
	case r.Context().Err() != nil:
		slog.Info("export cancelled", "requestId", requestID)
	default:
		slog.Error("export failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, api.CodeExportFailed, "failed to render statements", requestID)
	}
}
