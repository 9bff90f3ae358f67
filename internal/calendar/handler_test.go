package calendar

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	p := DefaultPolicy()
	// 2024-03-13 (水)
	p.Now = func() time.Time { return time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC) }
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), p)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHijriHandler(t *testing.T) {
	r := newRouter()

	w := get(r, "/api/v1/calendar/hijri?date=2024-03-11")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var d Display
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "1 رمضان 1445هـ", d.Hijri)
	assert.Equal(t, "الإثنين", d.DayName)
	assert.Equal(t, 9, d.HijriDate.Month)

	w = get(r, "/api/v1/calendar/hijri")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-03-13"`)

	w = get(r, "/api/v1/calendar/hijri?date=13/03/2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/v1/calendar/hijri?date=0500-01-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearestValidHandler(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name    string
		query   string
		want    string
		changed bool
	}{
		{"weekday stays", "date=2024-03-12", "2024-03-12", false},
		{"saturday to thursday", "date=2024-03-16", "2024-03-14", true},
		{"future clamps to today", "date=2024-04-01", "2024-03-13", true},
		{"future allowed", "date=2024-04-01&disable_future=false", "2024-04-01", false},
		{"weekend allowed", "date=2024-03-08&exclude_weekends=false", "2024-03-08", false},
		{"future weekend allowed", "date=2024-03-15&exclude_weekends=false&disable_future=false", "2024-03-15", false},
		{"default today", "", "2024-03-13", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/api/v1/calendar/nearest-valid?"+tt.query)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var res NearestValidResponse
			require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.want, res.Date)
			assert.Equal(t, tt.changed, res.Changed)
		})
	}

	w := get(r, "/api/v1/calendar/nearest-valid?date=2024-03-12&disable_future=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
