package school

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bytedance/sonic"

	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/ids"
	"PRESENCE-backend/internal/platform/kv"
)

const MsgImportRejected = "تعذر استيراد الملف، يرجى تصحيح الأسطر التالية"

// Service は学校設定（教員マスタ・テンプレートを含む）を管理する
type Service struct {
	store kv.Store
	id    ids.IDGen
}

func NewService(store kv.Store) *Service {
	return &Service{store: store, id: ids.NewULID()}
}

// Get: 未保存ならデフォルト設定
func (s *Service) Get(ctx context.Context) (Config, error) {
	cfg := DefaultConfig()
	if _, err := kv.GetJSON(ctx, s.store, kv.CategoryConfig, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Teachers == nil {
		cfg.Teachers = []Teacher{}
	}
	return cfg, nil
}

// Save は設定を丸ごと置き換える。ID の無い教員には採番する。
func (s *Service) Save(ctx context.Context, in Config) (Config, error) {
	cfg, err := cleanConfig(in)
	if err != nil {
		return Config{}, err
	}
	for i := range cfg.Teachers {
		if cfg.Teachers[i].ID != "" {
			continue
		}
		if cfg.Teachers[i].ID, err = s.id.New(); err != nil {
			return Config{}, fmt.Errorf("teacher id: %w", err)
		}
	}
	if err := kv.SetJSON(ctx, s.store, kv.CategoryConfig, cfg); err != nil {
		return Config{}, err
	}
	log.Printf("[INFO] config saved: %d teachers, cutoff %s", len(cfg.Teachers), cfg.TardinessCutoffTime)
	return cfg, nil
}

func (s *Service) FindTeacher(ctx context.Context, id string) (Teacher, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return Teacher{}, err
	}
	t, ok := cfg.FindTeacher(id)
	if !ok {
		return Teacher{}, apierr.ErrNotFound(MsgTeacherNotFound)
	}
	return t, nil
}

func (s *Service) AddTeacher(ctx context.Context, in TeacherInput) (Teacher, error) {
	t, err := cleanTeacher(Teacher{Name: in.Name, NationalID: in.NationalID, Phone: in.Phone})
	if err != nil {
		return Teacher{}, err
	}
	if t.ID, err = s.id.New(); err != nil {
		return Teacher{}, fmt.Errorf("teacher id: %w", err)
	}
	err = s.update(ctx, func(cfg *Config) error {
		if _, dup := cfg.findByNationalID(t.NationalID); dup {
			return apierr.ErrConflict(MsgDuplicateNationalID)
		}
		cfg.Teachers = append(cfg.Teachers, t)
		return nil
	})
	if err != nil {
		return Teacher{}, err
	}
	return t, nil
}

func (s *Service) UpdateTeacher(ctx context.Context, id string, in TeacherInput) (Teacher, error) {
	t, err := cleanTeacher(Teacher{ID: id, Name: in.Name, NationalID: in.NationalID, Phone: in.Phone})
	if err != nil {
		return Teacher{}, err
	}
	err = s.update(ctx, func(cfg *Config) error {
		idx := -1
		for i, cur := range cfg.Teachers {
			if cur.ID == id {
				idx = i
			} else if cur.NationalID == t.NationalID {
				return apierr.ErrConflict(MsgDuplicateNationalID)
			}
		}
		if idx < 0 {
			return apierr.ErrNotFound(MsgTeacherNotFound)
		}
		cfg.Teachers[idx] = t
		return nil
	})
	if err != nil {
		return Teacher{}, err
	}
	return t, nil
}

// RemoveTeacher: 既存の欠勤・遅刻記録は名前のスナップショットを持つので触らない
func (s *Service) RemoveTeacher(ctx context.Context, id string) error {
	return s.update(ctx, func(cfg *Config) error {
		out := cfg.Teachers[:0]
		hit := false
		for _, t := range cfg.Teachers {
			if t.ID == id {
				hit = true
				continue
			}
			out = append(out, t)
		}
		if !hit {
			return apierr.ErrNotFound(MsgTeacherNotFound)
		}
		cfg.Teachers = out
		return nil
	})
}

// ImportTeachers は全行が妥当な場合のみ追加する。1行でも不正なら何も書き込まず、
// 行ごとのエラーを返す。
func (s *Service) ImportTeachers(ctx context.Context, rows []ImportRow) (ImportResult, error) {
	if len(rows) == 0 {
		return ImportResult{}, apierr.ErrInvalid(MsgEmptyImport)
	}
	var res ImportResult
	err := s.update(ctx, func(cfg *Config) error {
		seen := make(map[string]bool, len(rows))
		added := make([]Teacher, 0, len(rows))
		var rowErrs []RowError
		for _, r := range rows {
			t, err := cleanTeacher(Teacher{Name: r.Name, NationalID: r.NationalID, Phone: r.Phone})
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: r.Line, Message: messageOf(err)})
				continue
			}
			_, exists := cfg.findByNationalID(t.NationalID)
			if exists || seen[t.NationalID] {
				rowErrs = append(rowErrs, RowError{Line: r.Line, Message: MsgDuplicateNationalID})
				continue
			}
			seen[t.NationalID] = true
			if t.ID, err = s.id.New(); err != nil {
				return fmt.Errorf("teacher id: %w", err)
			}
			added = append(added, t)
		}
		if len(rowErrs) > 0 {
			res.Errors = rowErrs
			return apierr.ErrInvalid(MsgImportRejected)
		}
		cfg.Teachers = append(cfg.Teachers, added...)
		res.Added = added
		return nil
	})
	if err != nil {
		return res, err
	}
	log.Printf("[INFO] teachers imported: %d", len(res.Added))
	return res, nil
}

// update は設定の read-modify-write。fn がエラーなら書き込まない。
func (s *Service) update(ctx context.Context, fn func(cfg *Config) error) error {
	return s.store.Mutate(ctx, kv.CategoryConfig, func(cur []byte, found bool) ([]byte, error) {
		cfg := DefaultConfig()
		if found && len(cur) > 0 {
			if err := sonic.Unmarshal(cur, &cfg); err != nil {
				return nil, fmt.Errorf("kv decode %s: %w", kv.CategoryConfig, err)
			}
		}
		if cfg.Teachers == nil {
			cfg.Teachers = []Teacher{}
		}
		if err := fn(&cfg); err != nil {
			return nil, err
		}
		return sonic.Marshal(cfg)
	})
}

func messageOf(err error) string {
	var api *apierr.APIError
	if errors.As(err, &api) {
		return api.Message
	}
	return err.Error()
}
