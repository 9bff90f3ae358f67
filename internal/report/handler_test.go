package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/school"
)

type fakeConfig struct{ cfg school.Config }

func (f fakeConfig) Get(context.Context) (school.Config, error) { return f.cfg, nil }

type fakeRecords struct {
	absences  []attendance.AbsenceRecord
	tardiness []attendance.TardinessRecord
}

func (f fakeRecords) AbsencesInRange(_ context.Context, teacherID string, start, end time.Time) ([]attendance.AbsenceRecord, error) {
	return attendance.FilterByTeacherAndRange(f.absences, teacherID, start, end), nil
}

func (f fakeRecords) TardinessOf(_ context.Context, teacherID string, start, end *time.Time) ([]attendance.TardinessRecord, error) {
	if start != nil {
		return attendance.FilterByTeacherAndRange(f.tardiness, teacherID, *start, *end), nil
	}
	out := []attendance.TardinessRecord{}
	for _, r := range f.tardiness {
		if r.TeacherID == teacherID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeRecords) Statistics(context.Context, attendance.ListQuery) (attendance.Statistics, error) {
	return attendance.Statistics{
		Absences:  attendance.AggregateAbsences(f.absences),
		Tardiness: attendance.AggregateTardiness(f.tardiness),
	}, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC) }

func newTestService(recs fakeRecords) *Service {
	cfg := school.DefaultConfig()
	cfg.SchoolName = "مدرسة النور"
	cfg.PrincipalName = "خالد"
	cfg.Teachers = []school.Teacher{
		{ID: "t1", Name: "أحمد", NationalID: "1234567890"},
		{ID: "t2", Name: "سارة", NationalID: "2234567890"},
	}
	svc := NewService(fakeConfig{cfg: cfg}, recs)
	svc.clock = fixedClock{}
	return svc
}

var sampleRecords = fakeRecords{
	absences: []attendance.AbsenceRecord{
		{ID: "a1", TeacherID: "t1", TeacherName: "أحمد", Date: "2024-03-10"},
		{ID: "a2", TeacherID: "t1", TeacherName: "أحمد", Date: "2024-03-12"},
	},
	tardiness: []attendance.TardinessRecord{
		{ID: "x1", TeacherID: "t1", TeacherName: "أحمد", Date: "2024-03-11", DayName: "الإثنين", HijriDate: "1 رمضان 1445هـ", ArrivalTime: "07:20", CutoffTime: "07:00", LateByMinutes: 20},
	},
}

func TestAbsenceLetterWholeSpan(t *testing.T) {
	svc := newTestService(sampleRecords)
	l, err := svc.AbsenceLetter(context.Background(), Request{TeacherID: "t1"})
	require.NoError(t, err)
	assert.Contains(t, l.Text, "الأخ المعلم / أحمد")
	assert.Contains(t, l.Text, "29 شعبان 1445هـ (الأحد)")
	assert.Contains(t, l.Text, "2 رمضان 1445هـ (الثلاثاء)")
	assert.Contains(t, l.Text, "(2) يوم/أيام")
	assert.Contains(t, l.Text, "التاريخ: 3 رمضان 1445هـ")
}

func TestLettersNotFound(t *testing.T) {
	svc := newTestService(sampleRecords)
	ctx := context.Background()

	_, err := svc.AbsenceLetter(ctx, Request{TeacherID: "t2"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Contains(t, err.Error(), MsgNoAbsences)

	_, err = svc.AbsenceLetter(ctx, Request{TeacherID: "t1", From: "2024-03-01", To: "2024-03-05"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	_, err = svc.TardinessLetter(ctx, Request{TeacherID: "t2"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Contains(t, err.Error(), MsgNoTardiness)

	_, err = svc.TardinessLetter(ctx, Request{TeacherID: "nobody"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	_, err = svc.AbsenceLetter(ctx, Request{TeacherID: "t1", From: "2024-03-05"})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.AbsenceLetter(ctx, Request{})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), svc)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandlerTardinessFormats(t *testing.T) {
	r := newRouter(newTestService(sampleRecords))

	w := get(r, "/api/v1/reports/tardiness?teacher_id=t1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, "- الإثنين 1 رمضان 1445هـ: حضور الساعة 07:20 (تأخر 20 دقيقة)<br>")
	assert.NotContains(t, body, "{{tardinessDetails}}")

	w = get(r, "/api/v1/reports/tardiness?teacher_id=t1&format=text")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "حضور الساعة 07:20")

	w = get(r, "/api/v1/reports/tardiness?teacher_id=t1&format=pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/v1/reports/tardiness?teacher_id=t2")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerStatisticsPage(t *testing.T) {
	r := newRouter(newTestService(sampleRecords))
	w := get(r, "/api/v1/reports/statistics")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, "إحصائيات الغياب")
	assert.Contains(t, body, "<td>أحمد</td><td>2</td>")
	assert.Contains(t, body, "<td>1</td><td>أحمد</td><td>1</td><td>20</td>")
	assert.Contains(t, body, "تاريخ الطباعة: 3 رمضان 1445هـ")

	r = newRouter(newTestService(fakeRecords{}))
	w = get(r, "/api/v1/reports/statistics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "لا يوجد سجلات غياب")
	assert.Contains(t, w.Body.String(), "لا يوجد سجلات تأخر")
}
