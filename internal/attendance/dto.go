package attendance

import "PRESENCE-backend/internal/school"

type CreateAbsenceRequest struct {
	TeacherID string `json:"teacherId"`
	Date      string `json:"date"` // YYYY-MM-DD
}

type CreateTardinessRequest struct {
	TeacherID   string `json:"teacherId"`
	Date        string `json:"date"`
	ArrivalTime string `json:"arrivalTime"` // HH:mm
}

// ListQuery: 空の項目は絞り込みに使わない
type ListQuery struct {
	TeacherID string
	From      string // YYYY-MM-DD
	To        string
}

type ListAbsencesResponse struct {
	Items []AbsenceRecord `json:"items"`
	Total int             `json:"total"`
}

type ListTardinessResponse struct {
	Items        []TardinessRecord `json:"items"`
	Total        int               `json:"total"`
	TotalMinutes int               `json:"totalMinutes"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type Statistics struct {
	Absences  []AbsenceStat   `json:"absences"`
	Tardiness []TardinessStat `json:"tardiness"`
}

// TeacherSummary: 教員詳細画面
type TeacherSummary struct {
	Teacher        school.Teacher    `json:"teacher"`
	Absences       []AbsenceRecord   `json:"absences"`
	Tardiness      []TardinessRecord `json:"tardiness"`
	TotalAbsences  int               `json:"totalAbsences"`
	TotalTardiness int               `json:"totalTardiness"`
	TotalMinutes   int               `json:"totalMinutes"`
	TotalLate      string            `json:"totalLate"` // 表示用 "H ساعة و M دقيقة"
	FirstAbsence   string            `json:"firstAbsence,omitempty"`
	LastAbsence    string            `json:"lastAbsence,omitempty"`
}
