package school

import "strings"

// Teacher は設定に埋め込まれた教員マスタ
type Teacher struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone,omitempty"`
}

// Config: 学校設定（1デプロイに1件、保存時は丸ごと置き換え）
type Config struct {
	SchoolName          string    `json:"schoolName"`
	PrincipalName       string    `json:"principalName"`
	TardinessCutoffTime string    `json:"tardinessCutoffTime"` // "HH:mm"
	Teachers            []Teacher `json:"teachers"`
	AbsenceTemplate     string    `json:"absenceTemplate"`
	TardinessTemplate   string    `json:"tardinessTemplate"`
}

func (c Config) FindTeacher(id string) (Teacher, bool) {
	for _, t := range c.Teachers {
		if t.ID == id {
			return t, true
		}
	}
	return Teacher{}, false
}

func (c Config) findByNationalID(nid string) (Teacher, bool) {
	nid = strings.TrimSpace(nid)
	for _, t := range c.Teachers {
		if t.NationalID == nid {
			return t, true
		}
	}
	return Teacher{}, false
}

// TeacherInput: 追加・更新リクエスト
type TeacherInput struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalId" binding:"required,nationalid"`
	Phone      string `json:"phone"`
}

// ImportRow: 一括取り込みの1行（名前, 身分証番号, 電話）
type ImportRow struct {
	Line       int    `json:"line"`
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone,omitempty"`
}

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	Added  []Teacher  `json:"added"`
	Errors []RowError `json:"errors,omitempty"`
}
