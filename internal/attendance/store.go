package attendance

import (
	"context"
	"errors"

	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/kv"
)

const (
	MsgDuplicateAbsence = "تم تسجيل غياب هذا المعلم في هذا التاريخ مسبقاً"
	MsgRecordNotFound   = "السجل غير موجود"
)

// Store は欠勤・遅刻の2カテゴリを扱う
type Store struct {
	absences  *kv.Repository[AbsenceRecord]
	tardiness *kv.Repository[TardinessRecord]
}

func NewStore(s kv.Store) *Store {
	return &Store{
		absences:  kv.NewRepository[AbsenceRecord](s, kv.CategoryAbsences),
		tardiness: kv.NewRepository[TardinessRecord](s, kv.CategoryTardiness),
	}
}

func (s *Store) Absences(ctx context.Context) ([]AbsenceRecord, error) {
	return s.absences.List(ctx)
}

func (s *Store) Tardiness(ctx context.Context) ([]TardinessRecord, error) {
	return s.tardiness.List(ctx)
}

// InsertAbsence: 同じ教員・同じ日付が既にあれば CONFLICT（確認と追加は同じ更新内で行う）
func (s *Store) InsertAbsence(ctx context.Context, rec AbsenceRecord) error {
	return s.absences.Update(ctx, func(items []AbsenceRecord) ([]AbsenceRecord, error) {
		for _, it := range items {
			if it.TeacherID == rec.TeacherID && it.Date == rec.Date {
				return nil, apierr.ErrConflict(MsgDuplicateAbsence)
			}
		}
		return append(items, rec), nil
	})
}

func (s *Store) InsertTardiness(ctx context.Context, rec TardinessRecord) error {
	return s.tardiness.Append(ctx, rec)
}

func (s *Store) DeleteAbsence(ctx context.Context, id string) (AbsenceRecord, error) {
	rec, err := s.absences.RemoveByID(ctx, id)
	return rec, notFound(err)
}

func (s *Store) DeleteTardiness(ctx context.Context, id string) (TardinessRecord, error) {
	rec, err := s.tardiness.RemoveByID(ctx, id)
	return rec, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, kv.ErrNotFound) {
		return apierr.ErrNotFound(MsgRecordNotFound)
	}
	return err
}
