// Package handler exposes the report pipeline over HTTP. It is a thin layer:
// all metrics arrive already computed from the service.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dpereyra/historial-firmante/internal/domain/report/loader"
	"github.com/dpereyra/historial-firmante/internal/domain/report/service"
	"github.com/dpereyra/historial-firmante/pkg/metrics"
	"github.com/dpereyra/historial-firmante/pkg/money"
)

// ReportHandler handles report uploads.
type ReportHandler struct {
	svc       *service.Service
	logger    *slog.Logger
	maxUpload int64
}

// NewReportHandler creates a new report handler.
func NewReportHandler(svc *service.Service, logger *slog.Logger, maxUpload int64) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger, maxUpload: maxUpload}
}

type summaryPayload struct {
	TotalAmount      string `json:"total_amount"`
	TotalDisplay     string `json:"total_display"`
	Count            int    `json:"count"`
	AccreditedAmount string `json:"accredited_amount"`
	AccreditedPct    string `json:"accredited_pct"`
	RejectedAmount   string `json:"rejected_amount"`
	RejectedPct      string `json:"rejected_pct"`
	UnparsableCount  int    `json:"unparsable_count"`
}

type unparsablePayload struct {
	Row int    `json:"row"`
	Raw string `json:"raw"`
}

type reportResponse struct {
	Summary    summaryPayload      `json:"summary"`
	Narrative  string              `json:"narrative"`
	Columns    []string            `json:"columns"`
	Rows       [][]string          `json:"rows"`
	Unparsable []unparsablePayload `json:"unparsable,omitempty"`
}

// GenerateReport handles POST /api/report: one multipart upload, processed
// start to finish, summary returned as JSON.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "archivo demasiado grande o formulario inválido")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "falta el archivo a procesar")
		return
	}
	defer file.Close()

	report, err := h.svc.BuildReport(r.Context(), file)
	if err != nil {
		h.writeReportError(w, err, header.Filename)
		return
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UnparsableCells.Add(float64(report.Summary.UnparsableCount))
	metrics.ReportDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, buildResponse(report))
}

func buildResponse(report *service.Report) reportResponse {
	sum := report.Summary
	resp := reportResponse{
		Summary: summaryPayload{
			TotalAmount:      sum.Total.StringFixed(2),
			TotalDisplay:     money.FromDecimal(sum.Total).Display(),
			Count:            sum.Count,
			AccreditedAmount: sum.Accredited.StringFixed(2),
			AccreditedPct:    sum.AccreditedPct.StringFixed(2),
			RejectedAmount:   sum.Rejected.StringFixed(2),
			RejectedPct:      sum.RejectedPct.StringFixed(2),
			UnparsableCount:  sum.UnparsableCount,
		},
		Narrative: report.Narrative,
		Columns:   report.Detail.Headers(),
		Rows:      report.Detail.Strings(),
	}
	for _, u := range report.Unparsable {
		resp.Unparsable = append(resp.Unparsable, unparsablePayload{Row: u.Row, Raw: u.Raw})
	}
	return resp
}

// writeReportError maps the service's terminal failures to specific
// user-facing messages instead of a generic error dump.
func (h *ReportHandler) writeReportError(w http.ResponseWriter, err error, filename string) {
	var schemaErr *service.SchemaError
	switch {
	case errors.Is(err, loader.ErrNoTable):
		metrics.UploadsTotal.WithLabelValues("load_failure").Inc()
		h.logger.Warn("upload could not be decoded", slog.String("file", filename), slog.Any("error", err))
		writeError(w, http.StatusUnprocessableEntity,
			"No se pudo leer el archivo. Asegurate de que sea un Excel, HTML o CSV válido.")
	case errors.As(err, &schemaErr):
		metrics.UploadsTotal.WithLabelValues("schema_failure").Inc()
		h.logger.Warn("upload missing columns", slog.String("file", filename), slog.Any("missing", schemaErr.Missing))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":           "El archivo leído no tiene las columnas requeridas.",
			"missing_columns": schemaErr.Missing,
			"found_columns":   schemaErr.Found,
		})
	case errors.Is(err, service.ErrNoPurchases):
		metrics.UploadsTotal.WithLabelValues("empty_filter").Inc()
		writeError(w, http.StatusUnprocessableEntity,
			"El archivo se leyó correctamente, pero no hay registros 'CO - Compra'.")
	default:
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		h.logger.Error("report build failed", slog.String("file", filename), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "error interno procesando el archivo")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
