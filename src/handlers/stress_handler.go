// src/handlers/stress_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/bankstress/src/config"
	"github.com/username/bankstress/src/logger"
	"github.com/username/bankstress/src/models"
	"github.com/username/bankstress/src/security/validation"
	"github.com/username/bankstress/src/services"
	"github.com/username/bankstress/src/utils"
)

// StressRequest is the JSON request body of POST /api/stress. Parameter
// fields omitted by the client keep their documented defaults.
type StressRequest struct {
	CSVText string          `json:"csv_text"`
	Params  json.RawMessage `json:"params"`
}

type StressHandler struct {
	stressService services.StressService
}

func NewStressHandler(service services.StressService) *StressHandler {
	return &StressHandler{stressService: service}
}

// HandleStress runs the stress test on a CSV payload embedded in a JSON body.
func (h *StressHandler) HandleStress(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.Cfg.MaxUploadSizeBytes)

	var req StressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxLogger.Warn("Invalid stress request body", "error", err)
		utils.SendJSONError(w, "Invalid JSON request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CSVText) == "" {
		utils.SendJSONError(w, "csv_text is required", http.StatusBadRequest)
		return
	}

	params, err := decodeParams(req.Params)
	if err != nil {
		ctxLogger.Warn("Invalid stress parameters", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.stressService.RunStress(strings.NewReader(req.CSVText), params)
	if err != nil {
		h.sendStressError(w, r, err)
		return
	}

	ctxLogger.Info("Stress run completed", "scenarios", len(result.Results), "equity", result.Equity)
	utils.SendJSONResponse(w, http.StatusOK, result)
}

// HandleStressUpload runs the stress test on a multipart CSV file upload.
// An optional "params" form field carries the same JSON object as /api/stress.
func (h *StressHandler) HandleStressUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if clientContentType := fileHeader.Header.Get("Content-Type"); clientContentType != "" {
		if err := validation.ValidateClientContentType(clientContentType); err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if _, err := validation.ValidateFileContent(file); err != nil {
		ctxLogger.Warn("File content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := decodeParams(json.RawMessage(r.FormValue("params")))
	if err != nil {
		ctxLogger.Warn("Invalid stress parameters in upload", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctxLogger.Info("Processing stress upload", "filename", fileHeader.Filename, "size", fileHeader.Size)

	result, err := h.stressService.RunStress(file, params)
	if err != nil {
		h.sendStressError(w, r, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, result)
}

// decodeParams merges a raw JSON params object over the defaults and
// validates the result. An empty object (or none at all) means pure defaults.
func decodeParams(raw json.RawMessage) (models.StressParams, error) {
	params := models.DefaultStressParams()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return params, fmt.Errorf("invalid params object: %w", err)
		}
	}
	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

// sendStressError maps engine errors to HTTP statuses: structural input
// problems are 400, a zero equity base is 422 (well-formed but uncomputable).
func (h *StressHandler) sendStressError(w http.ResponseWriter, r *http.Request, err error) {
	ctxLogger := logger.FromContext(r.Context())

	var schemaErr *models.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		ctxLogger.Warn("Stress request rejected: schema error", "missing", schemaErr.MissingColumns)
		utils.SendJSONError(w, "Missing columns: "+strings.Join(schemaErr.MissingColumns, ", "), http.StatusBadRequest)
	case errors.Is(err, models.ErrZeroEquity):
		ctxLogger.Warn("Stress request rejected: zero equity base")
		utils.SendJSONError(w, "Equity base is zero; cannot express EVE as % of equity", http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrParsingFailed):
		ctxLogger.Warn("Stress request rejected: parse failure", "error", err)
		utils.SendJSONError(w, "Failed to parse CSV payload", http.StatusBadRequest)
	default:
		ctxLogger.Error("Stress run failed", "error", err)
		utils.SendJSONError(w, "Internal error running stress test", http.StatusInternalServerError)
	}
}
