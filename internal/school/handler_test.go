package school

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PRESENCE-backend/internal/platform/textenc"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService()
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterRoutes(g, g, svc)
	return r, svc
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerAddTeacher(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/config/teachers", map[string]string{"name": "أحمد", "nationalId": "999"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errBody map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, false, errBody["success"])
	assert.Equal(t, MsgBadNationalID, errBody["error"])
	assert.Equal(t, "INVALID_ARGUMENT", errBody["code"])

	w = doJSON(r, http.MethodPost, "/api/v1/config/teachers", map[string]string{"name": "أحمد", "nationalId": "1234567890"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Teacher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "t1", created.ID)

	w = doJSON(r, http.MethodGet, "/api/v1/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cfg Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	require.Len(t, cfg.Teachers, 1)

	w = doJSON(r, http.MethodDelete, "/api/v1/config/teachers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodDelete, "/api/v1/config/teachers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerImportWindows1256(t *testing.T) {
	r, svc := newTestRouter(t)

	var body bytes.Buffer
	enc, err := textenc.NewWriter(&body, textenc.Windows1256)
	require.NoError(t, err)
	_, err = io.WriteString(enc, "أحمد,1234567890\nسارة,2234567890,0501\n")
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/config/teachers/import?encoding=windows-1256", &body)
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cfg, err := svc.Get(req.Context())
	require.NoError(t, err)
	require.Len(t, cfg.Teachers, 2)
	assert.Equal(t, "أحمد", cfg.Teachers[0].Name)
	assert.Equal(t, "0501", cfg.Teachers[1].Phone)
}

func TestHandlerImportRowErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/config/teachers/import", strings.NewReader("أحمد,1234567890\nسارة,55\n"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool       `json:"success"`
		Rows    []RowError `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, 2, body.Rows[0].Line)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/config/teachers/import?encoding=ebcdic", strings.NewReader(""))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
