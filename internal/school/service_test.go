package school

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/kv"
)

type seqID struct{ n int }

func (g *seqID) New() (string, error) {
	g.n++
	return fmt.Sprintf("t%d", g.n), nil
}

func newTestService() (*Service, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	svc := NewService(store)
	svc.id = &seqID{}
	return svc, store
}

func TestGetReturnsDefaults(t *testing.T) {
	svc, _ := newTestService()
	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "07:00", cfg.TardinessCutoffTime)
	assert.Empty(t, cfg.Teachers)
	assert.NotNil(t, cfg.Teachers)
	assert.Contains(t, cfg.AbsenceTemplate, "{{teacherName}}")
	assert.Contains(t, cfg.TardinessTemplate, "{{tardinessDetails}}")
}

func TestSaveRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, Config{
		SchoolName:          "مدرسة النور",
		PrincipalName:       "خالد",
		TardinessCutoffTime: "7:30",
		Teachers: []Teacher{
			{Name: " أحمد  علي ", NationalID: "1234567890"},
			{ID: "keep", Name: "سارة", NationalID: "2234567890", Phone: "0500000000"},
		},
		AbsenceTemplate:   "A {{teacherName}}",
		TardinessTemplate: "T",
	})
	require.NoError(t, err)
	assert.Equal(t, "07:30", saved.TardinessCutoffTime)
	assert.Equal(t, "t1", saved.Teachers[0].ID)
	assert.Equal(t, "أحمد علي", saved.Teachers[0].Name)
	assert.Equal(t, "keep", saved.Teachers[1].ID)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code apierr.Code
	}{
		{"bad cutoff", Config{TardinessCutoffTime: "25:00"}, apierr.CodeInvalidArgument},
		{"bad national id", Config{TardinessCutoffTime: "07:00", Teachers: []Teacher{{Name: "a", NationalID: "3234567890"}}}, apierr.CodeInvalidArgument},
		{"short national id", Config{TardinessCutoffTime: "07:00", Teachers: []Teacher{{Name: "a", NationalID: "123"}}}, apierr.CodeInvalidArgument},
		{"missing name", Config{TardinessCutoffTime: "07:00", Teachers: []Teacher{{Name: "  ", NationalID: "1234567890"}}}, apierr.CodeInvalidArgument},
		{"duplicate national id", Config{TardinessCutoffTime: "07:00", Teachers: []Teacher{
			{Name: "a", NationalID: "1234567890"},
			{Name: "b", NationalID: "1234567890"},
		}}, apierr.CodeConflict},
		{"duplicate teacher id", Config{TardinessCutoffTime: "07:00", Teachers: []Teacher{
			{ID: "t1", Name: "a", NationalID: "1234567890"},
			{ID: " t1 ", Name: "b", NationalID: "2234567890"},
		}}, apierr.CodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService()
			_, err := svc.Save(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.True(t, apierr.Is(err, tt.code), "err = %v", err)

			_, found, _ := store.Get(context.Background(), kv.CategoryConfig)
			assert.False(t, found, "nothing must be written")
		})
	}
}

func TestSaveKeepsDistinctIDs(t *testing.T) {
	svc, _ := newTestService()
	cfg, err := svc.Save(context.Background(), Config{TardinessCutoffTime: "07:00", Teachers: []Teacher{
		{ID: "a", Name: "a", NationalID: "1234567890"},
		{Name: "b", NationalID: "2234567890"},
		{Name: "c", NationalID: "1234567891"},
	}})
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, tc := range cfg.Teachers {
		require.NotEmpty(t, tc.ID)
		ids[tc.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestTeacherCRUD(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	ahmad, err := svc.AddTeacher(ctx, TeacherInput{Name: "أحمد", NationalID: "1111111111"})
	require.NoError(t, err)
	assert.Equal(t, "t1", ahmad.ID)

	_, err = svc.AddTeacher(ctx, TeacherInput{Name: "آخر", NationalID: "1111111111"})
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	sara, err := svc.AddTeacher(ctx, TeacherInput{Name: "سارة", NationalID: "2222222222"})
	require.NoError(t, err)

	// 他の教員と同じ番号には変更できない
	_, err = svc.UpdateTeacher(ctx, sara.ID, TeacherInput{Name: "سارة", NationalID: "1111111111"})
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	// 自分の番号のままなら更新できる
	updated, err := svc.UpdateTeacher(ctx, sara.ID, TeacherInput{Name: "سارة محمد", NationalID: "2222222222", Phone: "0555"})
	require.NoError(t, err)
	assert.Equal(t, "سارة محمد", updated.Name)

	_, err = svc.UpdateTeacher(ctx, "missing", TeacherInput{Name: "x", NationalID: "1999999999"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	found, err := svc.FindTeacher(ctx, sara.ID)
	require.NoError(t, err)
	assert.Equal(t, "0555", found.Phone)

	require.NoError(t, svc.RemoveTeacher(ctx, ahmad.ID))
	assert.True(t, apierr.Is(svc.RemoveTeacher(ctx, ahmad.ID), apierr.CodeNotFound))

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Len(t, cfg.Teachers, 1)
	assert.Equal(t, sara.ID, cfg.Teachers[0].ID)
}

func TestImportTeachersAllOrNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.AddTeacher(ctx, TeacherInput{Name: "موجود", NationalID: "1000000000"})
	require.NoError(t, err)

	res, err := svc.ImportTeachers(ctx, []ImportRow{
		{Line: 2, Name: "أ", NationalID: "1000000001"},
		{Line: 3, Name: "ب", NationalID: "1000000000"}, // 既存と重複
		{Line: 4, Name: "ج", NationalID: "12"},
		{Line: 5, Name: "د", NationalID: "1000000001"}, // ファイル内で重複
	})
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
	require.Len(t, res.Errors, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{res.Errors[0].Line, res.Errors[1].Line, res.Errors[2].Line})
	assert.Equal(t, MsgBadNationalID, res.Errors[1].Message)

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.Teachers, 1)

	res, err = svc.ImportTeachers(ctx, []ImportRow{
		{Line: 1, Name: "أ", NationalID: "1000000001"},
		{Line: 2, Name: "ب", NationalID: "2000000002", Phone: "0501"},
	})
	require.NoError(t, err)
	assert.Len(t, res.Added, 2)

	cfg, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.Teachers, 3)

	_, err = svc.ImportTeachers(ctx, nil)
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}

func TestParseTeacherCSV(t *testing.T) {
	in := "الاسم,رقم الهوية,الجوال\nأحمد,1234567890,0500000000\n\n سارة ,2234567890\n"
	rows, err := ParseTeacherCSV(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ImportRow{Line: 2, Name: "أحمد", NationalID: "1234567890", Phone: "0500000000"}, rows[0])
	assert.Equal(t, ImportRow{Line: 4, Name: "سارة", NationalID: "2234567890"}, rows[1])

	// 見出し無し
	rows, err = ParseTeacherCSV(strings.NewReader("أحمد,1234567890\n"), "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Line)

	_, err = ParseTeacherCSV(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestValidNationalID(t *testing.T) {
	assert.True(t, ValidNationalID("1234567890"))
	assert.True(t, ValidNationalID("2000000000"))
	assert.False(t, ValidNationalID("3234567890"))
	assert.False(t, ValidNationalID("123456789"))
	assert.False(t, ValidNationalID("12345678901"))
	assert.False(t, ValidNationalID("12345a7890"))
}
