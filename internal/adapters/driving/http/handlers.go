package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// IngestResponse is returned after a scan report is stored
// @Description Stored scan record IDs
type IngestResponse struct {
	IDs []string `json:"ids"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness, checking the scan store connection
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Store unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Ingest endpoints

// handleIngestScan godoc
// @Summary      Ingest a structured scan report
// @Description  Validates and stores one slot record; re-posting the same
// @Description  date and slot replaces the earlier report
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ScanRecord  true  "Scan record"
// @Success      200      {object}  IngestResponse
// @Failure      400      {object}  ErrorResponse  "Validation failure"
// @Failure      401      {object}  ErrorResponse  "Missing or invalid token"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /scans [post]
func (s *Server) handleIngestScan(w http.ResponseWriter, r *http.Request) {
	var record domain.ScanRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.ingestService.Ingest(r.Context(), &record)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{IDs: []string{id}})
}

// rawIngestRequest is the async ingest payload
type rawIngestRequest struct {
	ScanDate    string          `json:"scan_date"`
	ScanTime    domain.ScanTime `json:"scan_time,omitempty"`
	RawMarkdown string          `json:"raw_markdown"`
}

// handleIngestRaw godoc
// @Summary      Queue a raw markdown report for ingestion
// @Description  The report is parsed and stored by a background worker
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        request  body      rawIngestRequest  true  "Raw report"
// @Success      202      {object}  map[string]string
// @Failure      400      {object}  ErrorResponse  "Validation failure"
// @Failure      401      {object}  ErrorResponse  "Missing or invalid token"
// @Failure      503      {object}  ErrorResponse  "Queue not configured"
// @Router       /scans/raw [post]
func (s *Server) handleIngestRaw(w http.ResponseWriter, r *http.Request) {
	if s.taskQueue == nil {
		writeError(w, http.StatusServiceUnavailable, "async ingest is not configured")
		return
	}

	var req rawIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !domain.ValidDate(req.ScanDate) {
		writeError(w, http.StatusBadRequest, "scan_date must be YYYY-MM-DD")
		return
	}
	if req.RawMarkdown == "" {
		writeError(w, http.StatusBadRequest, "raw_markdown is required")
		return
	}
	if req.ScanTime != "" && !req.ScanTime.IsValid() {
		writeError(w, http.StatusBadRequest, "scan_time must be morning, midday or evening")
		return
	}

	task := &domain.IngestTask{
		ID:          uuid.NewString(),
		ScanDate:    req.ScanDate,
		ScanTime:    req.ScanTime,
		RawMarkdown: req.RawMarkdown,
		EnqueuedAt:  time.Now().UTC(),
	}
	if err := s.taskQueue.Enqueue(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to queue report")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": task.ID})
}

// Read endpoints

// handleListDates godoc
// @Summary      List dates with scans
// @Tags         Scans
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Failure      401  {object}  ErrorResponse  "Missing or invalid token"
// @Router       /scans [get]
func (s *Server) handleListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.scanService.ListDates(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"dates": dates})
}

// handleGetDay godoc
// @Summary      Get the merged scan for a date
// @Description  Slot reports are merged and items enriched with blindspot info
// @Tags         Scans
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  domain.ParsedScan
// @Failure      400   {object}  ErrorResponse  "Invalid date"
// @Failure      404   {object}  ErrorResponse  "No scans for date"
// @Router       /scans/{date} [get]
func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	scan, err := s.scanService.GetDay(r.Context(), r.PathValue("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

// handleGetDaySummary godoc
// @Summary      Get the summary for a date
// @Tags         Scans
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  domain.ScanSummary
// @Failure      400   {object}  ErrorResponse  "Invalid date"
// @Failure      404   {object}  ErrorResponse  "No scans for date"
// @Router       /scans/{date}/summary [get]
func (s *Server) handleGetDaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.scanService.GetDaySummary(r.Context(), r.PathValue("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleGetFraming godoc
// @Summary      Get the framing-watch items for a date
// @Tags         Scans
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   domain.FramingComparison
// @Failure      400   {object}  ErrorResponse  "Invalid date"
// @Failure      404   {object}  ErrorResponse  "No scans for date"
// @Router       /scans/{date}/framing [get]
func (s *Server) handleGetFraming(w http.ResponseWriter, r *http.Request) {
	items, err := s.scanService.FramingItems(r.Context(), r.PathValue("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleWeeklyDigest godoc
// @Summary      Aggregate scans across a date range
// @Tags         Digest
// @Produce      json
// @Param        from  query     string  true  "Range start (YYYY-MM-DD)"
// @Param        to    query     string  true  "Range end (YYYY-MM-DD)"
// @Success      200   {object}  domain.WeeklySummary
// @Failure      400   {object}  ErrorResponse  "Invalid range"
// @Router       /digest/weekly [get]
func (s *Server) handleWeeklyDigest(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	summary, err := s.digestService.AggregateRange(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// writeServiceError maps domain errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
