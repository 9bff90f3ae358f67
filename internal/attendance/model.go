package attendance

import "time"

// AbsenceRecord: 欠勤1件。教員名・和暦・曜日は登録時点のスナップショット。
type AbsenceRecord struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacherId"`
	TeacherName string    `json:"teacherName"`
	Date        string    `json:"date"` // YYYY-MM-DD
	HijriDate   string    `json:"hijriDate"`
	DayName     string    `json:"dayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TardinessRecord: 遅刻1件。CutoffTime は登録時点の設定値を保持する。
type TardinessRecord struct {
	ID            string    `json:"id"`
	TeacherID     string    `json:"teacherId"`
	TeacherName   string    `json:"teacherName"`
	Date          string    `json:"date"`
	HijriDate     string    `json:"hijriDate"`
	DayName       string    `json:"dayName"`
	ArrivalTime   string    `json:"arrivalTime"` // HH:mm
	CutoffTime    string    `json:"cutoffTime"`
	LateByMinutes int       `json:"lateByMinutes"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r AbsenceRecord) Key() string                  { return r.ID }
func (r AbsenceRecord) Teacher() (id, name string)   { return r.TeacherID, r.TeacherName }
func (r AbsenceRecord) Day() string                  { return r.Date }
func (r AbsenceRecord) Created() time.Time           { return r.CreatedAt }
func (r TardinessRecord) Key() string                { return r.ID }
func (r TardinessRecord) Teacher() (id, name string) { return r.TeacherID, r.TeacherName }
func (r TardinessRecord) Day() string                { return r.Date }
func (r TardinessRecord) Created() time.Time         { return r.CreatedAt }

// Entry は絞り込み・集計の対象になる記録
type Entry interface {
	Key() string
	Teacher() (id, name string)
	Day() string
	Created() time.Time
}

type AbsenceStat struct {
	TeacherID     string `json:"teacherId"`
	TeacherName   string `json:"teacherName"`
	TotalAbsences int    `json:"totalAbsences"`
}

type TardinessStat struct {
	TeacherID      string `json:"teacherId"`
	TeacherName    string `json:"teacherName"`
	TotalTardiness int    `json:"totalTardiness"`
	TotalMinutes   int    `json:"totalMinutes"`
}
