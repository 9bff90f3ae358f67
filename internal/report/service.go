package report

import (
	"context"
	"strings"
	"time"

	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/calendar"
	"PRESENCE-backend/internal/lateness"
	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/ids"
	"PRESENCE-backend/internal/school"
)

const (
	MsgNoAbsences  = "لا يوجد غياب مسجل لهذا المعلم في الفترة المحددة"
	MsgNoTardiness = "لا يوجد سجلات تأخر لهذا المعلم"
)

// RecordSource: 文書に必要な記録の取得口（attendance.Service が満たす）
type RecordSource interface {
	AbsencesInRange(ctx context.Context, teacherID string, start, end time.Time) ([]attendance.AbsenceRecord, error)
	TardinessOf(ctx context.Context, teacherID string, start, end *time.Time) ([]attendance.TardinessRecord, error)
	Statistics(ctx context.Context, q attendance.ListQuery) (attendance.Statistics, error)
}

type Request struct {
	TeacherID string
	From      string // YYYY-MM-DD、空なら記録のある全期間
	To        string
	Locale    lateness.Locale
}

type Service struct {
	config  attendance.ConfigSource
	records RecordSource
	clock   ids.Clock
}

func NewService(config attendance.ConfigSource, records RecordSource) *Service {
	return &Service{config: config, records: records, clock: ids.RealClock{}}
}

func (s *Service) today() time.Time { return calendar.DateOnly(s.clock.Now()) }

// AbsenceLetter: 期間未指定なら最初と最後の欠勤日を期間にする（教員詳細画面と同じ）
func (s *Service) AbsenceLetter(ctx context.Context, req Request) (Letter, error) {
	cfg, t, err := s.teacher(ctx, req.TeacherID)
	if err != nil {
		return Letter{}, err
	}
	start, end, bounded, err := parseRange(req.From, req.To)
	if err != nil {
		return Letter{}, err
	}
	records, err := s.records.AbsencesInRange(ctx, t.ID, start, end)
	if err != nil {
		return Letter{}, err
	}
	if len(records) == 0 {
		return Letter{}, apierr.ErrNotFound(MsgNoAbsences)
	}
	if !bounded {
		// 古い順で返ってくる
		start, _ = calendar.ParseDate(records[0].Date)
		end, _ = calendar.ParseDate(records[len(records)-1].Date)
	}
	return AbsenceLetter(cfg, t, records, start, end, s.today()), nil
}

func (s *Service) TardinessLetter(ctx context.Context, req Request) (Letter, error) {
	cfg, t, err := s.teacher(ctx, req.TeacherID)
	if err != nil {
		return Letter{}, err
	}
	start, end, bounded, err := parseRange(req.From, req.To)
	if err != nil {
		return Letter{}, err
	}
	var records []attendance.TardinessRecord
	if bounded {
		records, err = s.records.TardinessOf(ctx, t.ID, &start, &end)
	} else {
		records, err = s.records.TardinessOf(ctx, t.ID, nil, nil)
	}
	if err != nil {
		return Letter{}, err
	}
	if len(records) == 0 {
		return Letter{}, apierr.ErrNotFound(MsgNoTardiness)
	}
	return TardinessLetter(cfg, t, records, s.today(), req.Locale), nil
}

func (s *Service) Statistics(ctx context.Context, req Request) (StatisticsDocument, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return StatisticsDocument{}, err
	}
	st, err := s.records.Statistics(ctx, attendance.ListQuery{From: req.From, To: req.To})
	if err != nil {
		return StatisticsDocument{}, err
	}
	return NewStatisticsDocument(cfg, st, s.today()), nil
}

func (s *Service) teacher(ctx context.Context, id string) (school.Config, school.Teacher, error) {
	if strings.TrimSpace(id) == "" {
		return school.Config{}, school.Teacher{}, apierr.ErrInvalid(attendance.MsgTeacherRequired)
	}
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return school.Config{}, school.Teacher{}, err
	}
	t, ok := cfg.FindTeacher(id)
	if !ok {
		return school.Config{}, school.Teacher{}, apierr.ErrNotFound(attendance.MsgTeacherNotFound)
	}
	return cfg, t, nil
}

// parseRange: 両方空なら全期間（bounded=false）。片方だけは不可。
func parseRange(from, to string) (start, end time.Time, bounded bool, err error) {
	if from == "" && to == "" {
		return time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), false, nil
	}
	if start, err = calendar.ParseDate(from); err != nil {
		return start, end, false, apierr.ErrInvalid(attendance.MsgBadDate)
	}
	if end, err = calendar.ParseDate(to); err != nil {
		return start, end, false, apierr.ErrInvalid(attendance.MsgBadDate)
	}
	if end.Before(start) {
		return start, end, false, apierr.ErrInvalid(attendance.MsgBadRange)
	}
	return start, end, true, nil
}
