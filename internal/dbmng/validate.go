package dbmng

import (
	"strings"

	"PRESENCE-backend/internal/calendar"
	"PRESENCE-backend/internal/lateness"
	"PRESENCE-backend/internal/platform/apierr"
)

const (
	MsgBadRecord        = "سجل غير صالح في النسخة الاحتياطية (%s رقم %d)"
	MsgDuplicateAbsence = "غياب مكرر لنفس المعلم في نفس التاريخ (%s %s)"
	MsgNotLate          = "سجل تأخر بدون دقائق تأخر (رقم %d)"
)

// validateRecords は書き込み前に登録時と同じ条件を確認する
func validateRecords(b Backup) error {
	seen := make(map[string]bool, len(b.Absences))
	for i, r := range b.Absences {
		if !validBase(r.ID, r.TeacherID, r.Date) {
			return apierr.Invalidf(MsgBadRecord, "absences", i+1)
		}
		key := r.TeacherID + "|" + r.Date
		if seen[key] {
			return apierr.Invalidf(MsgDuplicateAbsence, r.TeacherID, r.Date)
		}
		seen[key] = true
	}

	for i, r := range b.Tardiness {
		if !validBase(r.ID, r.TeacherID, r.Date) ||
			lateness.Validate(r.ArrivalTime) != nil || lateness.Validate(r.CutoffTime) != nil {
			return apierr.Invalidf(MsgBadRecord, "tardiness", i+1)
		}
		if r.LateByMinutes < 1 {
			return apierr.Invalidf(MsgNotLate, i+1)
		}
	}
	return nil
}

func validBase(id, teacherID, date string) bool {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(teacherID) == "" {
		return false
	}
	_, err := calendar.ParseDate(date)
	return err == nil
}
