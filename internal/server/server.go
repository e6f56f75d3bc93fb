// Package server exposes the chart engine over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/marketchart/internal/chart"
	"github.com/iwvelando/marketchart/internal/config"
	"github.com/iwvelando/marketchart/internal/ingest"
	"github.com/iwvelando/marketchart/internal/interaction"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/adapters"
	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/datetime"
	"github.com/iwvelando/marketchart/pkg/output"
	"github.com/iwvelando/marketchart/pkg/validation"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	defaults      config.ChartConfig
	loader        *ingest.Loader
}

// NewHandler constructs the HTTP handler that serves the chart API. defaults
// seeds every chart request's options.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, defaults config.ChartConfig) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		defaults:      defaults,
		loader:        ingest.NewLoader(logger),
	}

	mux := http.NewServeMux()

	// Chart render from inline series
	mux.HandleFunc("/api/chart", h.handleChart)

	// Chart render from an uploaded workbook or series document
	mux.HandleFunc("/api/chart/upload", h.handleChartUpload)

	// Aligned table of several series
	mux.HandleFunc("/api/align", h.handleAlign)

	// Daily forward fill of one series
	mux.HandleFunc("/api/fill", h.handleFill)

	// Closest available date lookup
	mux.HandleFunc("/api/closest", h.handleClosest)

	// Series picker normalization
	mux.HandleFunc("/api/targets", h.handleTargets)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type seriesPayload struct {
	series.Identity
	Points []series.Point `json:"points"`
}

type chartOptionsPayload struct {
	Range         string   `json:"range"`
	Relative      string   `json:"relative"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	BaselineIndex *int     `json:"baselineIndex"`
	LeaveGaps     *bool    `json:"leaveGaps"`
	Calendar      *bool    `json:"calendar"`
	Selection     []string `json:"selection"`
}

type tooltipPayload struct {
	Box    interaction.Size `json:"box"`
	Screen interaction.Size `json:"screen"`
}

type chartRequest struct {
	Series  []seriesPayload           `json:"series"`
	Options chartOptionsPayload       `json:"options"`
	Pointer *interaction.PointerEvent `json:"pointer"`
	Tooltip *tooltipPayload           `json:"tooltip"`
}

type chartResponse struct {
	chart.Output
	Hover     *interaction.Update   `json:"hover,omitempty"`
	Placement *interaction.Position `json:"placement,omitempty"`
	Warnings  []string              `json:"warnings,omitempty"`
	Duration  string                `json:"duration"`
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	const op = "server.handleChart"

	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode chart request: %v", err), op)
		return
	}

	sources := make([]ingest.Source, 0, len(req.Series))
	for _, s := range req.Series {
		sources = append(sources, adapters.PointsToSource(s.Identity, s.Points))
	}

	h.runChart(w, r, sources, nil, req, start, op)
}

func (h *handler) handleChartUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	const op = "server.handleChartUpload"

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing series file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read series file: %v", err), op)
		return
	}

	sources, warnings, err := ingest.ReadUpload(header.Filename, buf.Bytes())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading series file, %v", err), op)
		return
	}

	req := chartRequest{Options: chartOptionsPayload{
		Range:     r.FormValue("range"),
		Relative:  r.FormValue("relative"),
		Selection: splitList(r.FormValue("selection")),
	}}
	h.runChart(w, r, sources, warnings, req, start, op)
}

func (h *handler) runChart(w http.ResponseWriter, r *http.Request, sources []ingest.Source, warnings []string, req chartRequest, start time.Time, op string) {
	for _, check := range []error{validateRange(req.Options.Range), validation.ValidateRelativeMode(req.Options.Relative)} {
		if check != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, check.Error(), op)
			return
		}
	}

	loaded, loadWarnings, err := h.loader.LoadAll(r.Context(), sources)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings = append(warnings, loadWarnings...)

	c := chart.New(h.logger, h.chartOptions(req.Options))
	c.Load(loaded)
	if len(req.Options.Selection) > 0 {
		c.SetSelection(req.Options.Selection)
	}

	response := chartResponse{Output: c.Render(), Warnings: warnings}

	if req.Pointer != nil {
		c.PointerMove(*req.Pointer)
		if update, ok := c.Frame(time.Now()); ok {
			response.Hover = &update
			if req.Tooltip != nil && update.Visible() {
				pad := h.defaults.TooltipPadding
				if pad <= 0 {
					pad = constants.DefaultTooltipPadding
				}
				pos := interaction.Place(
					interaction.Position{X: req.Pointer.ClientX, Y: req.Pointer.ClientY},
					req.Tooltip.Box, req.Tooltip.Screen, pad,
				)
				response.Placement = &pos
			}
		}
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("chart rendered",
		zap.String("op", op),
		zap.String("chart", response.ID),
		zap.Int("series", len(response.Paths)),
		zap.Int("keys", len(response.Keys)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) chartOptions(p chartOptionsPayload) chart.Options {
	opts := h.defaults.ChartOptions()
	if p.Range != "" {
		opts.Range = series.RangeKey(p.Range)
	}
	if p.Relative != "" {
		opts.Relative = chart.RelativeMode(p.Relative)
	}
	if p.Width > 0 && p.Height > 0 {
		opts.Viewport.Width = p.Width
		opts.Viewport.Height = p.Height
	}
	if p.BaselineIndex != nil {
		opts.BaselineIndex = *p.BaselineIndex
	}
	if p.LeaveGaps != nil {
		opts.GapPolicy = series.ForwardFill
		if *p.LeaveGaps {
			opts.GapPolicy = series.LeaveGaps
		}
	}
	if p.Calendar != nil {
		opts.Calendar = *p.Calendar
	}
	return opts
}

type alignRequest struct {
	Series    []seriesPayload `json:"series"`
	Start     string          `json:"start"`
	End       string          `json:"end"`
	LeaveGaps bool            `json:"leaveGaps"`
	Calendar  bool            `json:"calendar"`
}

type alignResponse struct {
	Series   []string     `json:"series"`
	Rows     []output.Row `json:"rows"`
	CSV      string       `json:"csv"`
	Warnings []string     `json:"warnings,omitempty"`
}

func (h *handler) handleAlign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	const op = "server.handleAlign"

	var req alignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode align request: %v", err), op)
		return
	}

	opts := series.AlignmentOptions{Calendar: req.Calendar}
	if req.LeaveGaps {
		opts.GapPolicy = series.LeaveGaps
	}
	for _, bound := range []struct {
		raw string
		dst *datetime.PeriodKey
	}{{req.Start, &opts.RangeStart}, {req.End, &opts.RangeEnd}} {
		if bound.raw == "" {
			continue
		}
		k, ok := datetime.ParsePeriodKey(bound.raw)
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid range bound %q", bound.raw), op)
			return
		}
		*bound.dst = k
	}

	var warnings []string
	in := make([]series.Series, 0, len(req.Series))
	for _, p := range req.Series {
		s, dropped := series.NewSeries(p.Identity, p.Points)
		if dropped > 0 {
			warnings = append(warnings, fmt.Sprintf("series %q: dropped %d unusable points", p.Name, dropped))
		}
		in = append(in, s)
	}

	frame := series.Align(in, opts)
	h.writeJSON(w, http.StatusOK, alignResponse{
		Series:   output.ColumnKeys(frame),
		Rows:     output.Rows(frame),
		CSV:      output.CsvString(frame),
		Warnings: warnings,
	})
}

type fillRequest struct {
	Points []series.Point `json:"points"`
	Start  string         `json:"start"`
	End    string         `json:"end"`
}

func (h *handler) handleFill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req fillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode fill request: %v", err), "server.handleFill")
		return
	}
	h.writeJSON(w, http.StatusOK, series.FillMissing(req.Points, req.Start, req.End))
}

type closestRequest struct {
	Dates  []string `json:"dates"`
	Target string   `json:"target"`
}

type closestResponse struct {
	Date  *string `json:"date"`
	Found bool    `json:"found"`
}

func (h *handler) handleClosest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req closestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode closest request: %v", err), "server.handleClosest")
		return
	}

	var resp closestResponse
	if d, ok := series.FindClosestDate(req.Dates, req.Target); ok {
		resp.Date, resp.Found = &d, true
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleTargets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var items []*series.Target
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode targets: %v", err), "server.handleTargets")
		return
	}
	h.writeJSON(w, http.StatusOK, series.DedupeAndSort(items))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func validateRange(r string) error {
	if r == "" {
		return nil
	}
	return validation.ValidateRange(r)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("chart request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before writing the status, so an encoding
// failure becomes a 500 instead of an empty 200.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
