package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"redline/internal/domain"
	"redline/internal/port"
	"redline/internal/proofread"
	"redline/internal/report"
)

// AnalysisHandler handles document upload, analysis and artifact downloads.
type AnalysisHandler struct {
	service       *proofread.Service
	store         port.AnalysisStore
	logger        *zap.Logger
	maxFileSizeMB int64
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(service *proofread.Service, store port.AnalysisStore, logger *zap.Logger, maxFileSizeMB int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:       service,
		store:         store,
		logger:        logger,
		maxFileSizeMB: maxFileSizeMB,
	}
}

// Create handles POST /api/v1/analyses
func (h *AnalysisHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	maxBytes := h.maxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		HandleError(c, h.logger, domain.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return
	}
	if int64(len(data)) > maxBytes {
		HandleError(c, h.logger, domain.ErrFileTooLarge)
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), header.Filename, data)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	if notes, err := h.service.AnalyzeStructure(c.Request.Context(), result.Units); err != nil {
		h.logger.Warn("structure analysis failed", zap.Error(err))
	} else {
		result.StructuralNotes = notes
	}

	h.store.Put(result)
	RespondCreated(c, result)
}

// Get handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	RespondOK(c, result)
}

// DownloadRevised handles GET /api/v1/analyses/:id/revised.docx
func (h *AnalysisHandler) DownloadRevised(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := report.RevisedDocx(result)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	serveFile(c, data, report.MIMEDocx, report.BuildFilename(result.FileName, "revised", "docx"))
}

// DownloadHighlighted handles GET /api/v1/analyses/:id/highlighted.docx
func (h *AnalysisHandler) DownloadHighlighted(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := report.HighlightedDocx(result)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	serveFile(c, data, report.MIMEDocx, report.BuildFilename(result.FileName, "highlighted", "docx"))
}

// DownloadBundle handles GET /api/v1/analyses/:id/bundle.zip
func (h *AnalysisHandler) DownloadBundle(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	revised, err := report.RevisedDocx(result)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	highlighted, err := report.HighlightedDocx(result)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	data, err := report.Bundle(
		report.BundleFile{Name: "revised.docx", Data: revised},
		report.BundleFile{Name: "highlighted.docx", Data: highlighted},
	)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	serveFile(c, data, report.MIMEZip, report.BuildFilename(result.FileName, "bundle", "zip"))
}

// DownloadReport handles GET /api/v1/analyses/:id/report.docx
func (h *AnalysisHandler) DownloadReport(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := report.ErrorTableDocx(result)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	serveFile(c, data, report.MIMEDocx, report.BuildFilename(result.FileName, "report", "docx"))
}

// DownloadFindingsXlsx handles GET /api/v1/analyses/:id/findings.xlsx
func (h *AnalysisHandler) DownloadFindingsXlsx(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := report.FindingsXlsx(result.Findings)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	serveFile(c, data, report.MIMEXlsx, report.BuildFilename(result.FileName, "findings", "xlsx"))
}

// DownloadStructureXlsx handles GET /api/v1/analyses/:id/structure.xlsx
func (h *AnalysisHandler) DownloadStructureXlsx(c *gin.Context) {
	result, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := report.StructureXlsx(result.StructuralNotes)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	serveFile(c, data, report.MIMEXlsx, report.BuildFilename(result.FileName, "structure", "xlsx"))
}

func (h *AnalysisHandler) lookup(c *gin.Context) (*domain.AnalysisResult, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "analysis id must be a UUID")
		return nil, false
	}
	result, ok := h.store.Get(id)
	if !ok {
		HandleError(c, h.logger, domain.ErrAnalysisNotFound)
		return nil, false
	}
	return result, true
}

func serveFile(c *gin.Context, data []byte, mime, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mime, data)
}
