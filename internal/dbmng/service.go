package dbmng

import (
	"context"
	"fmt"
	"log"
	"time"

	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/ids"
	"PRESENCE-backend/internal/platform/kv"
	"PRESENCE-backend/internal/school"
)

const BackupVersion = 1

const (
	MsgBadVersion = "نسخة احتياطية غير مدعومة"
	MsgNoConfig   = "النسخة الاحتياطية لا تحتوي على إعدادات المدرسة"
)

// Backup: config / absences / tardiness をまとめたもの（users は含めない）
type Backup struct {
	Version   int                          `json:"version"`
	CreatedAt time.Time                    `json:"createdAt"`
	Config    *school.Config               `json:"config"`
	Absences  []attendance.AbsenceRecord   `json:"absences"`
	Tardiness []attendance.TardinessRecord `json:"tardiness"`
}

type RestoreResult struct {
	Teachers  int `json:"teachers"`
	Absences  int `json:"absences"`
	Tardiness int `json:"tardiness"`
}

// ConfigSaver: school.Service が満たす
type ConfigSaver interface {
	Save(ctx context.Context, in school.Config) (school.Config, error)
}

type Service struct {
	store  kv.Store
	config ConfigSaver
	clock  ids.Clock
}

func NewService(store kv.Store, config ConfigSaver) *Service {
	return &Service{store: store, config: config, clock: ids.RealClock{}}
}

func (s *Service) Dump(ctx context.Context) (Backup, error) {
	b := Backup{Version: BackupVersion, CreatedAt: s.clock.Now().UTC()}

	var cfg school.Config
	found, err := kv.GetJSON(ctx, s.store, kv.CategoryConfig, &cfg)
	if err != nil {
		return Backup{}, err
	}
	if found {
		b.Config = &cfg
	}
	if b.Absences, err = kv.NewRepository[attendance.AbsenceRecord](s.store, kv.CategoryAbsences).List(ctx); err != nil {
		return Backup{}, err
	}
	if b.Tardiness, err = kv.NewRepository[attendance.TardinessRecord](s.store, kv.CategoryTardiness).List(ctx); err != nil {
		return Backup{}, err
	}
	return b, nil
}

// Restore は3カテゴリを置き換える。記録は保存時点のスナップショットなのでそのまま書き戻す。
func (s *Service) Restore(ctx context.Context, b Backup) (RestoreResult, error) {
	if b.Version != BackupVersion {
		return RestoreResult{}, apierr.ErrInvalid(MsgBadVersion)
	}
	if b.Config == nil {
		return RestoreResult{}, apierr.ErrInvalid(MsgNoConfig)
	}
	if err := validateRecords(b); err != nil {
		return RestoreResult{}, err
	}

	// 設定は通常の保存と同じ検証を通す
	cfg, err := s.config.Save(ctx, *b.Config)
	if err != nil {
		return RestoreResult{}, err
	}
	if err := kv.NewRepository[attendance.AbsenceRecord](s.store, kv.CategoryAbsences).ReplaceAll(ctx, b.Absences); err != nil {
		return RestoreResult{}, fmt.Errorf("restore absences: %w", err)
	}
	if err := kv.NewRepository[attendance.TardinessRecord](s.store, kv.CategoryTardiness).ReplaceAll(ctx, b.Tardiness); err != nil {
		return RestoreResult{}, fmt.Errorf("restore tardiness: %w", err)
	}

	res := RestoreResult{Teachers: len(cfg.Teachers), Absences: len(b.Absences), Tardiness: len(b.Tardiness)}
	log.Printf("[INFO] restored backup: teachers=%d absences=%d tardiness=%d", res.Teachers, res.Absences, res.Tardiness)
	return res, nil
}
