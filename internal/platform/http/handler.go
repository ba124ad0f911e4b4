package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/osintkit/phone-intel/internal/extract"
	"github.com/osintkit/phone-intel/internal/report"
	"github.com/osintkit/phone-intel/internal/service"
)

// maxUploadBytes caps document and batch-file uploads.
const maxUploadBytes = 10 << 20

type Handler struct {
	service service.Service
	logger  *zap.Logger
}

func NewHandler(s service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/lookup", h.Lookup)
	r.Post("/v1/lookup/batch", h.BatchLookup)
	r.Post("/v1/lookup/document", h.LookupDocument)

	r.Get("/v1/history", h.History)

	r.Get("/v1/favorites", h.ListFavorites)
	r.Post("/v1/favorites", h.SaveFavorite)
	r.Delete("/v1/favorites/{number}", h.RemoveFavorite)

	r.Post("/v1/reports", h.CreateReport)
	r.Get("/v1/reports/{number}", h.ListReports)

	r.Get("/v1/export", h.ExportQuery)
	r.Post("/v1/export", h.Export)
}

func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.Lookup(r.Context(), req.PhoneNumber)
	if err != nil {
		h.fail(w, "Lookup", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// BatchLookup accepts either a JSON body with phone_numbers or a
// multipart upload whose file is scanned for numbers as free text.
func (h *Handler) BatchLookup(w http.ResponseWriter, r *http.Request) {
	var numbers []string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, err := readUpload(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		numbers = extract.Numbers(string(data))
	} else {
		var req BatchLookupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON format", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		numbers = req.PhoneNumbers
	}

	res, err := h.service.BatchLookup(r.Context(), numbers)
	if err != nil {
		h.fail(w, "BatchLookup", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) LookupDocument(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.LookupDocument(r.Context(), data)
	if err != nil {
		h.fail(w, "LookupDocument", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.service.History(r.Context(), service.HistoryFilter{
		Country: r.URL.Query().Get("country"),
		Carrier: r.URL.Query().Get("carrier"),
		Limit:   limit,
	})
	if err != nil {
		h.fail(w, "History", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.service.Favorites(r.Context())
	if err != nil {
		h.fail(w, "ListFavorites", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(favs),
		"favorites": favs,
	})
}

func (h *Handler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SaveFavorite(r.Context(), req.PhoneNumber, req.Note); err != nil {
		h.fail(w, "SaveFavorite", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	if err := h.service.RemoveFavorite(r.Context(), number); err != nil {
		h.fail(w, "RemoveFavorite", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reporterRaw := r.Header.Get("X-Reporter-ID")
	if reporterRaw == "" {
		reporterRaw = "anonymous"
	}

	err := h.service.IngestReport(
		r.Context(),
		req.PhoneNumber,
		reporterRaw,
		req.Category,
		req.Comment,
	)

	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.fail(w, "CreateReport", err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ReportsFor(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.fail(w, "ListReports", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// Export renders previously resolved numbers in the requested format.
// Numbers with no stored lookup are silently omitted.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.renderExport(w, r, req)
}

// ExportQuery is the GET form: numbers as a comma-separated query
// parameter, for direct download links.
func (h *Handler) ExportQuery(w http.ResponseWriter, r *http.Request) {
	req := ExportRequest{
		PhoneNumbers: splitNumbers(r.URL.Query().Get("numbers")),
		Format:       r.URL.Query().Get("format"),
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.renderExport(w, r, req)
}

func (h *Handler) renderExport(w http.ResponseWriter, r *http.Request, req ExportRequest) {
	results, err := h.service.LookupsByNumbers(r.Context(), req.PhoneNumbers)
	if err != nil {
		h.fail(w, "Export", err)
		return
	}

	switch strings.ToLower(req.Format) {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="lookups.csv"`)
		w.Write(report.CSV(results))
	case "pdf":
		doc, err := report.PDF(results)
		if err != nil {
			h.fail(w, "Export", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="lookups.pdf"`)
		w.Write(doc)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":   len(results),
			"results": results,
		})
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrMissingNumber) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func splitNumbers(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isValidationError(err error) bool {
	msg := err.Error()
	return msg == "invalid phone format: ensure it includes country code (e.g. +569...)" ||
		msg == "invalid phone number: number does not exist" ||
		msg == "could not detect country from phone number" ||
		msg == "invalid category"
}

func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, errors.New("expected a multipart file upload")
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New(`missing "file" form field`)
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, maxUploadBytes))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
