package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ruya-backend/internal/common/errors"
	"ruya-backend/internal/common/middleware"
	dreamhttp "ruya-backend/internal/features/dream/delivery/http"
	"ruya-backend/internal/features/dream/models"
	"ruya-backend/internal/features/dream/service"
)

type stubDreamService struct {
	analyzeResp *service.AnalyzeResponse
	dreams      []*models.Dream
	err         error

	analyzeCalls int
}

func (s *stubDreamService) Analyze(context.Context, string, string) (*service.AnalyzeResponse, error) {
	s.analyzeCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.analyzeResp, nil
}

func (s *stubDreamService) History(context.Context, string) ([]*models.Dream, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dreams, nil
}

func (s *stubDreamService) Delete(context.Context, string) error {
	return s.err
}

func newTestRouter(svc *stubDreamService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorResponder())
	dreamhttp.NewDreamHandler(svc).RegisterRoutes(&router.RouterGroup)
	return router
}

func TestAnalyze_Success(t *testing.T) {
	svc := &stubDreamService{analyzeResp: &service.AnalyzeResponse{
		ID:         "d1",
		Title:      "Şehrin Üzerinde",
		ResultText: "yorum",
		ImageURL:   "https://image.example.com/prompt/x",
		Emotion:    "Özgürlük",
	}}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analiz-et",
		strings.NewReader(`{"user_id":"u1","dream_text":"uçuyordum"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "d1", body["id"])
	assert.Equal(t, "Şehrin Üzerinde", body["title"])
	assert.Equal(t, "yorum", body["result_text"])
	assert.Equal(t, "Özgürlük", body["emotion"])
}

func TestAnalyze_MissingDreamTextIsRejectedBeforeService(t *testing.T) {
	svc := &stubDreamService{}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analiz-et", strings.NewReader(`{"user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.analyzeCalls)
}

func TestAnalyze_QuotaExhaustedMapsTo403(t *testing.T) {
	svc := &stubDreamService{err: apperrors.NewQuotaExhaustedError("u1", 5)}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analiz-et",
		strings.NewReader(`{"user_id":"u1","dream_text":"uçuyordum"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, string(apperrors.ErrCodeQuotaExhausted), errObj["code"])
}

func TestAnalyze_CollaboratorFailureMapsTo500(t *testing.T) {
	svc := &stubDreamService{err: apperrors.NewTextGenerationError("interpretation", assert.AnError)}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analiz-et",
		strings.NewReader(`{"user_id":"u1","dream_text":"uçuyordum"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHistory_RequiresUserID(t *testing.T) {
	router := newTestRouter(&stubDreamService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gecmis", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_ReturnsDreams(t *testing.T) {
	svc := &stubDreamService{dreams: []*models.Dream{
		{ID: "d2", UserID: "u1", Title: "Son Rüya"},
		{ID: "d1", UserID: "u1", Title: "İlk Rüya"},
	}}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gecmis?user_id=u1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "d2", body[0]["id"])
}

func TestDelete_UnknownIDMapsTo404(t *testing.T) {
	svc := &stubDreamService{err: apperrors.NewDreamNotFoundError("missing")}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/ruya-sil/missing", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, string(apperrors.ErrCodeDreamNotFound), errObj["code"])
}

func TestDelete_Success(t *testing.T) {
	router := newTestRouter(&stubDreamService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/ruya-sil/d1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Rüya silindi", body["message"])
}
