package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"redline/internal/compare"
)

// CompareHandler handles document comparison requests.
type CompareHandler struct {
	service *compare.Service
	logger  *zap.Logger
}

// NewCompareHandler creates a new CompareHandler.
func NewCompareHandler(service *compare.Service, logger *zap.Logger) *CompareHandler {
	return &CompareHandler{service: service, logger: logger}
}

// Create handles POST /api/v1/comparisons
func (h *CompareHandler) Create(c *gin.Context) {
	originalName, originalData, ok := readFormFile(c, "original")
	if !ok {
		return
	}
	revisedName, revisedData, ok := readFormFile(c, "revised")
	if !ok {
		return
	}

	records, err := h.service.Compare(c.Request.Context(), originalName, originalData, revisedName, revisedData)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	RespondOK(c, gin.H{"records": records, "changed_pairs": len(records)})
}

func readFormFile(c *gin.Context, field string) (string, []byte, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", field+" file field is required")
		return "", nil, false
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded "+field+" file")
		return "", nil, false
	}
	return header.Filename, data, true
}
