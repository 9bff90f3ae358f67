package school

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"PRESENCE-backend/internal/lateness"
	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/textenc"
)

const (
	MsgTeacherNameRequired = "يرجى إدخال اسم المعلم"
	MsgBadNationalID       = "رقم الهوية يجب أن يتكون من 10 أرقام ويبدأ بالرقم 1 أو 2"
	MsgDuplicateNationalID = "رقم الهوية مسجل لمعلم آخر"
	MsgDuplicateTeacherID  = "معرف المعلم مكرر"
	MsgBadCutoff           = "وقت بداية التأخر غير صحيح، الصيغة المطلوبة HH:mm"
	MsgTeacherNotFound     = "المعلم غير موجود"
	MsgEmptyImport         = "الملف لا يحتوي على بيانات معلمين"
)

// 10桁、先頭は 1（国民）または 2（居住者）
var nationalIDPattern = regexp.MustCompile(`^[12]\d{9}$`)

func ValidNationalID(s string) bool {
	return nationalIDPattern.MatchString(strings.TrimSpace(s))
}

var registerOnce sync.Once

// RegisterValidation は gin のバリデータに `nationalid` タグを登録する
func RegisterValidation() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("nationalid", func(fl validator.FieldLevel) bool {
			return ValidNationalID(fl.Field().String())
		})
	})
	return err
}

// bindMessage はバインド失敗を利用者向けメッセージに変換する
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "NationalID":
				return MsgBadNationalID
			case "Name":
				return MsgTeacherNameRequired
			}
		}
	}
	return "البيانات المرسلة غير صالحة"
}

// cleanTeacher は入力を正規化して検査する（ID はそのまま）
func cleanTeacher(t Teacher) (Teacher, error) {
	t.Name = textenc.CleanName(t.Name)
	t.ID = strings.TrimSpace(t.ID)
	t.NationalID = strings.TrimSpace(t.NationalID)
	t.Phone = strings.TrimSpace(t.Phone)
	if t.Name == "" {
		return t, apierr.ErrInvalid(MsgTeacherNameRequired)
	}
	if !ValidNationalID(t.NationalID) {
		return t, apierr.ErrInvalid(MsgBadNationalID)
	}
	return t, nil
}

// cleanConfig: 保存前の正規化。教員の ID と身分証番号は一意（空の ID は保存時に採番）。
func cleanConfig(cfg Config) (Config, error) {
	cutoff, err := lateness.Normalize(cfg.TardinessCutoffTime)
	if err != nil {
		return cfg, apierr.ErrInvalid(MsgBadCutoff)
	}
	cfg.TardinessCutoffTime = cutoff
	cfg.SchoolName = strings.TrimSpace(cfg.SchoolName)
	cfg.PrincipalName = textenc.CleanName(cfg.PrincipalName)

	seen := make(map[string]bool, len(cfg.Teachers))
	seenID := make(map[string]bool, len(cfg.Teachers))
	teachers := make([]Teacher, 0, len(cfg.Teachers))
	for _, t := range cfg.Teachers {
		t, err := cleanTeacher(t)
		if err != nil {
			return cfg, err
		}
		if seen[t.NationalID] {
			return cfg, apierr.ErrConflict(MsgDuplicateNationalID)
		}
		seen[t.NationalID] = true
		if t.ID != "" {
			if seenID[t.ID] {
				return cfg, apierr.ErrConflict(MsgDuplicateTeacherID)
			}
			seenID[t.ID] = true
		}
		teachers = append(teachers, t)
	}
	cfg.Teachers = teachers
	return cfg, nil
}
