package attendance

import (
	"cmp"
	"slices"
	"time"

	"PRESENCE-backend/internal/calendar"
)

// AggregateAbsences は教員ごとの欠勤数を多い順に返す。
// 同数の場合は入力で先に現れた教員が先（安定ソート）。
func AggregateAbsences(records []AbsenceRecord) []AbsenceStat {
	idx := make(map[string]int)
	out := []AbsenceStat{}
	for _, r := range records {
		i, ok := idx[r.TeacherID]
		if !ok {
			i = len(out)
			idx[r.TeacherID] = i
			out = append(out, AbsenceStat{TeacherID: r.TeacherID, TeacherName: r.TeacherName})
		}
		out[i].TotalAbsences++
	}
	slices.SortStableFunc(out, func(a, b AbsenceStat) int {
		return cmp.Compare(b.TotalAbsences, a.TotalAbsences)
	})
	return out
}

// AggregateTardiness: 件数の多い順、分は合計
func AggregateTardiness(records []TardinessRecord) []TardinessStat {
	idx := make(map[string]int)
	out := []TardinessStat{}
	for _, r := range records {
		i, ok := idx[r.TeacherID]
		if !ok {
			i = len(out)
			idx[r.TeacherID] = i
			out = append(out, TardinessStat{TeacherID: r.TeacherID, TeacherName: r.TeacherName})
		}
		out[i].TotalTardiness++
		out[i].TotalMinutes += r.LateByMinutes
	}
	slices.SortStableFunc(out, func(a, b TardinessStat) int {
		return cmp.Compare(b.TotalTardiness, a.TotalTardiness)
	})
	return out
}

// FilterByTeacherAndRange は start <= date <= end（日付単位、両端含む）の記録を返す
func FilterByTeacherAndRange[R Entry](records []R, teacherID string, start, end time.Time) []R {
	from, to := start.Format(calendar.DateLayout), end.Format(calendar.DateLayout)
	out := []R{}
	for _, r := range records {
		id, _ := r.Teacher()
		if id != teacherID {
			continue
		}
		if d := r.Day(); d >= from && d <= to {
			out = append(out, r)
		}
	}
	return out
}

func ExistsForTeacherOnDate[R Entry](records []R, teacherID string, date time.Time) bool {
	day := date.Format(calendar.DateLayout)
	for _, r := range records {
		if id, _ := r.Teacher(); id == teacherID && r.Day() == day {
			return true
		}
	}
	return false
}

// newestFirst: 日付の新しい順、同日は登録の新しい順
func newestFirst[R Entry](records []R) {
	slices.SortStableFunc(records, func(a, b R) int {
		if c := cmp.Compare(b.Day(), a.Day()); c != 0 {
			return c
		}
		return b.Created().Compare(a.Created())
	})
}

// oldestFirst: 文書用の時系列順
func oldestFirst[R Entry](records []R) {
	slices.SortStableFunc(records, func(a, b R) int {
		if c := cmp.Compare(a.Day(), b.Day()); c != 0 {
			return c
		}
		return a.Created().Compare(b.Created())
	})
}

// span は記録の最も古い日付と新しい日付を返す。空なら ok=false。
func span[R Entry](records []R) (first, last string, ok bool) {
	for _, r := range records {
		d := r.Day()
		if !ok || d < first {
			first = d
		}
		if !ok || d > last {
			last = d
		}
		ok = true
	}
	return first, last, ok
}
