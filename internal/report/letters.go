package report

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/calendar"
	"PRESENCE-backend/internal/lateness"
	"PRESENCE-backend/internal/school"
)

// Letter: 差し込み済みの文書
type Letter struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// HTML: 印刷ページ用（エスケープ済み、改行は <br>）
func (l Letter) HTML() template.HTML {
	return template.HTML(ToHTMLLines(l.Text))
}

// 開始日・終了日は「和暦 (曜日)」
func dateWithDay(t time.Time) string {
	return fmt.Sprintf("%s (%s)", calendar.ToHijri(t).Formatted, calendar.WeekdayName(t))
}

func baseValues(cfg school.Config, t school.Teacher, today time.Time) map[string]string {
	return map[string]string{
		KeySchoolName:    cfg.SchoolName,
		KeyPrincipalName: cfg.PrincipalName,
		KeyTeacherName:   t.Name,
		KeyNationalID:    t.NationalID,
		KeyCurrentDate:   calendar.ToHijri(today).Formatted,
	}
}

// AbsenceLetter は期間 start..end の欠勤についての文書を作る。totalDays は記録件数。
func AbsenceLetter(cfg school.Config, t school.Teacher, records []attendance.AbsenceRecord, start, end, today time.Time) Letter {
	v := baseValues(cfg, t, today)
	v[KeyStartDate] = dateWithDay(start)
	v[KeyEndDate] = dateWithDay(end)
	v[KeyTotalDays] = strconv.Itoa(len(records))
	return Letter{
		Title: "مساءلة غياب - " + t.Name,
		Text:  Render(cfg.AbsenceTemplate, v),
	}
}

func TardinessLetter(cfg school.Config, t school.Teacher, records []attendance.TardinessRecord, today time.Time, loc lateness.Locale) Letter {
	v := baseValues(cfg, t, today)
	v[KeyTardinessDetails] = TardinessDetails(records, loc)
	return Letter{
		Title: "مساءلة تأخر - " + t.Name,
		Text:  Render(cfg.TardinessTemplate, v),
	}
}

// StatisticsDocument: 集計表（欠勤・遅刻）
type StatisticsDocument struct {
	Title         string                     `json:"title"`
	SchoolName    string                     `json:"schoolName"`
	PrincipalName string                     `json:"principalName"`
	Absences      []attendance.AbsenceStat   `json:"absences"`
	Tardiness     []attendance.TardinessStat `json:"tardiness"`
	PrintedOn     string                     `json:"printedOn"`
}

func NewStatisticsDocument(cfg school.Config, st attendance.Statistics, today time.Time) StatisticsDocument {
	return StatisticsDocument{
		Title:         "إحصائيات الحضور",
		SchoolName:    cfg.SchoolName,
		PrincipalName: cfg.PrincipalName,
		Absences:      st.Absences,
		Tardiness:     st.Tardiness,
		PrintedOn:     calendar.ToHijri(today).Formatted,
	}
}

// Text: format=text 用の平文
func (d StatisticsDocument) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "إحصائيات الحضور والغياب\nمدرسة: %s\nمدير المدرسة: %s\n\n", d.SchoolName, d.PrincipalName)

	b.WriteString("إحصائيات الغياب\n")
	if len(d.Absences) == 0 {
		b.WriteString("لا يوجد سجلات غياب\n")
	}
	for i, s := range d.Absences {
		fmt.Fprintf(&b, "%d. %s: %d\n", i+1, s.TeacherName, s.TotalAbsences)
	}

	b.WriteString("\nإحصائيات التأخر\n")
	if len(d.Tardiness) == 0 {
		b.WriteString("لا يوجد سجلات تأخر\n")
	}
	for i, s := range d.Tardiness {
		fmt.Fprintf(&b, "%d. %s: %d (%s)\n", i+1, s.TeacherName, s.TotalTardiness, lateness.FormatDuration(s.TotalMinutes, lateness.Arabic))
	}

	fmt.Fprintf(&b, "\nتاريخ الطباعة: %s", d.PrintedOn)
	return b.String()
}
