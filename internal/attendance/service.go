package attendance

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"PRESENCE-backend/internal/calendar"
	"PRESENCE-backend/internal/lateness"
	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/ids"
	"PRESENCE-backend/internal/platform/kv"
	"PRESENCE-backend/internal/school"
)

const (
	MsgTeacherRequired  = "يرجى اختيار المعلم"
	MsgTeacherNotFound  = "المعلم غير موجود"
	MsgBadDate          = "التاريخ غير صحيح، الصيغة المطلوبة YYYY-MM-DD"
	MsgDateNotAllowed   = "لا يمكن التسجيل في هذا التاريخ (عطلة نهاية الأسبوع أو تاريخ مستقبلي)"
	MsgBadArrival       = "وقت الحضور غير صحيح، الصيغة المطلوبة HH:mm"
	MsgArrivalNotLate   = "وقت الحضور يجب أن يكون بعد %s"
	MsgBadRange         = "تاريخ النهاية يجب أن يكون بعد تاريخ البداية"
	MsgBeforeHijriEpoch = "التاريخ قبل بداية التقويم الهجري"
)

// ConfigSource: 学校設定の読み出し口（school.Service が満たす）
type ConfigSource interface {
	Get(ctx context.Context) (school.Config, error)
}

type Options struct {
	// 週末・未来日の登録を拒否する
	RejectDisabledDates bool
	Policy              calendar.Policy
}

type Service struct {
	store  *Store
	config ConfigSource
	clock  ids.Clock
	id     ids.IDGen
	opts   Options
}

func NewService(store kv.Store, config ConfigSource, opts Options) *Service {
	// 指定されなかった項目だけ既定値で埋める
	def := calendar.DefaultPolicy()
	if opts.Policy.Now == nil {
		opts.Policy.Now = def.Now
	}
	if (opts.Policy.Weekend == [2]time.Weekday{}) {
		opts.Policy.Weekend = def.Weekend
	}
	return &Service{
		store:  NewStore(store),
		config: config,
		clock:  ids.RealClock{},
		id:     ids.NewULID(),
		opts:   opts,
	}
}

// subject: 登録対象の教員と日付（欠勤・遅刻共通）
type subject struct {
	cfg     school.Config
	teacher school.Teacher
	day     time.Time
	hijri   calendar.HijriDate
}

func (s *Service) prepare(ctx context.Context, teacherID, dateStr string) (subject, error) {
	if strings.TrimSpace(teacherID) == "" {
		return subject{}, apierr.ErrInvalid(MsgTeacherRequired)
	}
	day, err := s.parseDay(dateStr)
	if err != nil {
		return subject{}, err
	}
	if s.opts.RejectDisabledDates && s.opts.Policy.IsDisabled(day) {
		return subject{}, apierr.ErrInvalid(MsgDateNotAllowed)
	}
	h, err := calendar.ToHijriChecked(day)
	if err != nil {
		return subject{}, apierr.ErrInvalid(MsgBeforeHijriEpoch)
	}
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return subject{}, err
	}
	t, ok := cfg.FindTeacher(teacherID)
	if !ok {
		return subject{}, apierr.ErrNotFound(MsgTeacherNotFound)
	}
	return subject{cfg: cfg, teacher: t, day: day, hijri: h}, nil
}

// POST /absences
func (s *Service) RecordAbsence(ctx context.Context, in CreateAbsenceRequest) (AbsenceRecord, error) {
	sub, err := s.prepare(ctx, in.TeacherID, in.Date)
	if err != nil {
		return AbsenceRecord{}, err
	}
	id, err := s.id.New()
	if err != nil {
		return AbsenceRecord{}, fmt.Errorf("absence id: %w", err)
	}
	rec := AbsenceRecord{
		ID:          id,
		TeacherID:   sub.teacher.ID,
		TeacherName: sub.teacher.Name,
		Date:        sub.day.Format(calendar.DateLayout),
		HijriDate:   sub.hijri.Formatted,
		DayName:     calendar.WeekdayName(sub.day),
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.store.InsertAbsence(ctx, rec); err != nil {
		return AbsenceRecord{}, err
	}
	log.Printf("[INFO] absence recorded: teacher=%s date=%s", rec.TeacherID, rec.Date)
	return rec, nil
}

// POST /tardiness
// 締め時刻は登録時点の設定値をコピーする。後で設定を変えても既存の記録は変わらない。
func (s *Service) RecordTardiness(ctx context.Context, in CreateTardinessRequest) (TardinessRecord, error) {
	arrival, err := lateness.Normalize(in.ArrivalTime)
	if err != nil {
		return TardinessRecord{}, apierr.ErrInvalid(MsgBadArrival)
	}
	sub, err := s.prepare(ctx, in.TeacherID, in.Date)
	if err != nil {
		return TardinessRecord{}, err
	}
	cutoff := sub.cfg.TardinessCutoffTime
	late, err := lateness.Of(arrival, cutoff)
	if err != nil {
		return TardinessRecord{}, fmt.Errorf("configured cutoff %q: %w", cutoff, err)
	}
	if late < 1 {
		return TardinessRecord{}, apierr.Invalidf(MsgArrivalNotLate, cutoff)
	}
	id, err := s.id.New()
	if err != nil {
		return TardinessRecord{}, fmt.Errorf("tardiness id: %w", err)
	}
	rec := TardinessRecord{
		ID:            id,
		TeacherID:     sub.teacher.ID,
		TeacherName:   sub.teacher.Name,
		Date:          sub.day.Format(calendar.DateLayout),
		HijriDate:     sub.hijri.Formatted,
		DayName:       calendar.WeekdayName(sub.day),
		ArrivalTime:   arrival,
		CutoffTime:    cutoff,
		LateByMinutes: late,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err := s.store.InsertTardiness(ctx, rec); err != nil {
		return TardinessRecord{}, err
	}
	log.Printf("[INFO] tardiness recorded: teacher=%s date=%s late=%dmin", rec.TeacherID, rec.Date, late)
	return rec, nil
}

// GET /absences（新しい順）
func (s *Service) ListAbsences(ctx context.Context, q ListQuery) (ListAbsencesResponse, error) {
	all, err := s.store.Absences(ctx)
	if err != nil {
		return ListAbsencesResponse{}, err
	}
	items, err := filterList(s, all, q)
	if err != nil {
		return ListAbsencesResponse{}, err
	}
	return ListAbsencesResponse{Items: items, Total: len(items)}, nil
}

// GET /tardiness（新しい順）
func (s *Service) ListTardiness(ctx context.Context, q ListQuery) (ListTardinessResponse, error) {
	all, err := s.store.Tardiness(ctx)
	if err != nil {
		return ListTardinessResponse{}, err
	}
	items, err := filterList(s, all, q)
	if err != nil {
		return ListTardinessResponse{}, err
	}
	res := ListTardinessResponse{Items: items, Total: len(items)}
	for _, r := range items {
		res.TotalMinutes += r.LateByMinutes
	}
	return res, nil
}

// filterList は絞り込み後、新しい順に並べる
func filterList[R Entry](s *Service, all []R, q ListQuery) ([]R, error) {
	out, err := selectRecords(s, all, q)
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

// selectRecords: 空の項目は条件にしない。保存順のまま返す。
func selectRecords[R Entry](s *Service, all []R, q ListQuery) ([]R, error) {
	from, to, err := s.parseRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	out := make([]R, 0, len(all))
	for _, r := range all {
		id, _ := r.Teacher()
		if q.TeacherID != "" && id != q.TeacherID {
			continue
		}
		d := r.Day()
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// AbsencesInRange は教員・期間で絞った欠勤を日付の古い順で返す（文書生成用）
func (s *Service) AbsencesInRange(ctx context.Context, teacherID string, start, end time.Time) ([]AbsenceRecord, error) {
	all, err := s.store.Absences(ctx)
	if err != nil {
		return nil, err
	}
	out := FilterByTeacherAndRange(all, teacherID, start, end)
	oldestFirst(out)
	return out, nil
}

// TardinessOf は教員の遅刻を古い順で返す。期間が指定されればその範囲のみ。
func (s *Service) TardinessOf(ctx context.Context, teacherID string, start, end *time.Time) ([]TardinessRecord, error) {
	all, err := s.store.Tardiness(ctx)
	if err != nil {
		return nil, err
	}
	var out []TardinessRecord
	if start != nil && end != nil {
		out = FilterByTeacherAndRange(all, teacherID, *start, *end)
	} else {
		out = []TardinessRecord{}
		for _, r := range all {
			if r.TeacherID == teacherID {
				out = append(out, r)
			}
		}
	}
	oldestFirst(out)
	return out, nil
}

// GET /absences/exists
func (s *Service) AbsenceExists(ctx context.Context, teacherID, dateStr string) (bool, error) {
	if strings.TrimSpace(teacherID) == "" {
		return false, apierr.ErrInvalid(MsgTeacherRequired)
	}
	day, err := s.parseDay(dateStr)
	if err != nil {
		return false, err
	}
	all, err := s.store.Absences(ctx)
	if err != nil {
		return false, err
	}
	return ExistsForTeacherOnDate(all, teacherID, day), nil
}

func (s *Service) DeleteAbsence(ctx context.Context, id string) error {
	rec, err := s.store.DeleteAbsence(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("[INFO] absence deleted: id=%s teacher=%s date=%s", rec.ID, rec.TeacherID, rec.Date)
	return nil
}

func (s *Service) DeleteTardiness(ctx context.Context, id string) error {
	rec, err := s.store.DeleteTardiness(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("[INFO] tardiness deleted: id=%s teacher=%s date=%s", rec.ID, rec.TeacherID, rec.Date)
	return nil
}

// GET /statistics（期間は任意）
// 集計は保存順で行うので、同数の教員は先に記録された方が先に並ぶ。
func (s *Service) Statistics(ctx context.Context, q ListQuery) (Statistics, error) {
	q.TeacherID = ""
	abs, err := s.store.Absences(ctx)
	if err != nil {
		return Statistics{}, err
	}
	tard, err := s.store.Tardiness(ctx)
	if err != nil {
		return Statistics{}, err
	}
	abs, err = selectRecords(s, abs, q)
	if err != nil {
		return Statistics{}, err
	}
	tard, err = selectRecords(s, tard, q)
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{
		Absences:  AggregateAbsences(abs),
		Tardiness: AggregateTardiness(tard),
	}, nil
}

// GET /teachers/:id/summary
func (s *Service) TeacherSummary(ctx context.Context, teacherID string) (TeacherSummary, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return TeacherSummary{}, err
	}
	t, ok := cfg.FindTeacher(teacherID)
	if !ok {
		return TeacherSummary{}, apierr.ErrNotFound(MsgTeacherNotFound)
	}
	abs, err := s.ListAbsences(ctx, ListQuery{TeacherID: teacherID})
	if err != nil {
		return TeacherSummary{}, err
	}
	tard, err := s.ListTardiness(ctx, ListQuery{TeacherID: teacherID})
	if err != nil {
		return TeacherSummary{}, err
	}
	sum := TeacherSummary{
		Teacher:        t,
		Absences:       abs.Items,
		Tardiness:      tard.Items,
		TotalAbsences:  abs.Total,
		TotalTardiness: tard.Total,
		TotalMinutes:   tard.TotalMinutes,
		TotalLate:      lateness.FormatDuration(tard.TotalMinutes, lateness.Arabic),
	}
	if first, last, ok := span(abs.Items); ok {
		sum.FirstAbsence, sum.LastAbsence = first, last
	}
	return sum, nil
}

// ---------- helpers ----------

// parseDay: "YYYY-MM-DD" または "today"
func (s *Service) parseDay(v string) (time.Time, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "today" {
		return calendar.DateOnly(s.clock.Now()), nil
	}
	d, err := calendar.ParseDate(v)
	if err != nil {
		return time.Time{}, apierr.ErrInvalid(MsgBadDate)
	}
	return d, nil
}

func (s *Service) parseRange(fromStr, toStr string) (from, to string, err error) {
	if fromStr != "" {
		d, err := s.parseDay(fromStr)
		if err != nil {
			return "", "", err
		}
		from = d.Format(calendar.DateLayout)
	}
	if toStr != "" {
		d, err := s.parseDay(toStr)
		if err != nil {
			return "", "", err
		}
		to = d.Format(calendar.DateLayout)
	}
	if from != "" && to != "" && to < from {
		return "", "", apierr.ErrInvalid(MsgBadRange)
	}
	return from, to, nil
}

// ParseDay は他パッケージ（帳票）向けの公開版
func (s *Service) ParseDay(v string) (time.Time, error) { return s.parseDay(v) }

func (s *Service) Today() time.Time { return calendar.DateOnly(s.clock.Now()) }
