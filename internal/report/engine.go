// Package report fills the school's letter templates and builds the printable
// statistics document.
package report

import (
	"fmt"
	"html"
	"strings"

	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/lateness"
)

// テンプレートで使える差し込み項目
const (
	KeySchoolName       = "schoolName"
	KeyPrincipalName    = "principalName"
	KeyTeacherName      = "teacherName"
	KeyStartDate        = "startDate"
	KeyEndDate          = "endDate"
	KeyTotalDays        = "totalDays"
	KeyCurrentDate      = "currentDate"
	KeyTardinessDetails = "tardinessDetails"
	KeyNationalID       = "nationalId"
)

var knownKeys = map[string]bool{
	KeySchoolName: true, KeyPrincipalName: true, KeyTeacherName: true,
	KeyStartDate: true, KeyEndDate: true, KeyTotalDays: true,
	KeyCurrentDate: true, KeyTardinessDetails: true, KeyNationalID: true,
}

func placeholder(key string) string { return "{{" + key + "}}" }

// Render は既知の {{key}} をすべて置き換える。未知の項目と値の無い項目はそのまま残す。
// 置換は1パスなので、値に含まれる {{...}} は展開されない。
func Render(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		if !knownKeys[k] {
			continue
		}
		pairs = append(pairs, placeholder(k), v)
	}
	if len(pairs) == 0 {
		return tmpl
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// TardinessDetails: 1件1行、渡された順のまま
func TardinessDetails(records []attendance.TardinessRecord, loc lateness.Locale) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		var line string
		switch loc {
		case lateness.English:
			line = fmt.Sprintf("- %s %s: arrival at %s (late %d minutes)", r.DayName, r.HijriDate, r.ArrivalTime, r.LateByMinutes)
		default:
			line = fmt.Sprintf("- %s %s: حضور الساعة %s (تأخر %d دقيقة)", r.DayName, r.HijriDate, r.ArrivalTime, r.LateByMinutes)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ToHTMLLines はエスケープしてから改行を <br> にする
func ToHTMLLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}
