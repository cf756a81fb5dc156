package handler

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"redline/internal/compare"
	"redline/internal/docx"
	"redline/internal/domain"
	"redline/internal/middleware"
	"redline/internal/proofread"
	"redline/internal/session"
)

type stubCompleter struct {
	reply string
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	return s.reply, nil
}

func setupRouter(t *testing.T, reply string) (*gin.Engine, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := session.NewMemoryStore()
	completer := &stubCompleter{reply: reply}

	analysisH := NewAnalysisHandler(proofread.NewService(completer, logger), store, logger, 1)
	compareH := NewCompareHandler(compare.NewService(compare.NewScorer(completer, logger), logger), logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	v1 := r.Group("/api/v1")
	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Create)
	analyses.GET("/:id", analysisH.Get)
	analyses.GET("/:id/revised.docx", analysisH.DownloadRevised)
	analyses.GET("/:id/highlighted.docx", analysisH.DownloadHighlighted)
	analyses.GET("/:id/bundle.zip", analysisH.DownloadBundle)
	analyses.GET("/:id/report.docx", analysisH.DownloadReport)
	analyses.GET("/:id/findings.xlsx", analysisH.DownloadFindingsXlsx)
	analyses.GET("/:id/structure.xlsx", analysisH.DownloadStructureXlsx)
	v1.POST("/comparisons", compareH.Create)

	return r, store
}

func docxBytes(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	doc := docx.New()
	for _, p := range paragraphs {
		doc.AddParagraph(docx.Run{Text: p})
	}
	data, err := doc.Save()
	require.NoError(t, err)
	return data
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".docx")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func createAnalysis(t *testing.T, r *gin.Engine, reply string) string {
	t.Helper()
	body, contentType := multipartBody(t, map[string][]byte{
		"file": docxBytes(t, "Hasil analisa audit."),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func TestCreateAnalysis(t *testing.T) {
	r, store := setupRouter(t, "[WRONG] analisa -> [CORRECT] analisis -> [SENTENCE] Hasil analisa audit.")
	id := createAnalysis(t, r, "")

	result, ok := storeGet(t, store, id)
	require.True(t, ok)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "analisa", result.Findings[0].Wrong)
}

func storeGet(t *testing.T, store *session.MemoryStore, id string) (*domain.AnalysisResult, bool) {
	t.Helper()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	return store.Get(parsed)
}

func TestCreateAnalysis_MissingFile(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}

func TestCreateAnalysis_UnsupportedType(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestGetAnalysis(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	id := createAnalysis(t, r, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unit_reports"`)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/6e4f1e0a-0000-0000-0000-000000000000", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ANALYSIS_NOT_FOUND")
}

func TestGetAnalysis_InvalidID(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestDownloadRevised(t *testing.T) {
	r, _ := setupRouter(t, "[WRONG] analisa -> [CORRECT] analisis -> [SENTENCE] Hasil analisa audit.")
	id := createAnalysis(t, r, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id+"/revised.docx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "revised")

	doc, err := docx.Parse(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Hasil analisis audit.", doc.Paragraphs()[0].Text())
}

func TestDownloadBundle(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	id := createAnalysis(t, r, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id+"/bundle.zip", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "revised.docx", zr.File[0].Name)
	assert.Equal(t, "highlighted.docx", zr.File[1].Name)
}

func TestDownloadReport(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	id := createAnalysis(t, r, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id+"/report.docx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDownloadFindingsXlsx(t *testing.T) {
	r, _ := setupRouter(t, "NO ERRORS")
	id := createAnalysis(t, r, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id+"/findings.xlsx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDownloadRevised_PDFSourceRejected(t *testing.T) {
	r, store := setupRouter(t, "NO ERRORS")
	id := createAnalysis(t, r, "")

	// Flip the stored analysis to a PDF source.
	result, ok := storeGet(t, store, id)
	require.True(t, ok)
	result.FileType = domain.FileTypePDF
	store.Put(result)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id+"/revised.docx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_DOCX")
}

func TestCreateComparison(t *testing.T) {
	r, _ := setupRouter(t, "90")

	body, contentType := multipartBody(t, map[string][]byte{
		"original": docxBytes(t, "A B C"),
		"revised":  docxBytes(t, "A X C"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ChangedPairs int                 `json:"changed_pairs"`
			Records      []domain.DiffRecord `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.ChangedPairs)
	require.Len(t, resp.Data.Records, 1)
	assert.Equal(t, "90", resp.Data.Records[0].Confidence)
}

func TestCreateComparison_MissingRevised(t *testing.T) {
	r, _ := setupRouter(t, "90")

	body, contentType := multipartBody(t, map[string][]byte{
		"original": docxBytes(t, "A"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}
