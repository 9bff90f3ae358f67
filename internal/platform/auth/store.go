package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"PRESENCE-backend/internal/platform/kv"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User: 画面に返すプロフィール
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // admin | user
	CreatedAt time.Time `json:"createdAt"`
}

// UserRecord: 保存形式（メールは小文字で保持）
type UserRecord struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	User         User   `json:"user"`
}

func (r UserRecord) Key() string { return r.Email }

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

var errStop = errors.New("stop")

// Store は users カテゴリの配列を扱う
type Store struct {
	users *kv.Repository[UserRecord]
}

func NewStore(s kv.Store) *Store {
	return &Store{users: kv.NewRepository[UserRecord](s, kv.CategoryUsers)}
}

func (s *Store) List(ctx context.Context) ([]UserRecord, error) {
	return s.users.List(ctx)
}

// GetByEmail: 無ければ nil
func (s *Store) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	for i := range all {
		if normalizeEmail(all[i].Email) == email {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Create: 同じメールがあれば ErrAlreadyExists
func (s *Store) Create(ctx context.Context, rec UserRecord) error {
	return s.users.Update(ctx, func(items []UserRecord) ([]UserRecord, error) {
		for _, it := range items {
			if normalizeEmail(it.Email) == normalizeEmail(rec.Email) {
				return nil, ErrAlreadyExists
			}
		}
		return append(items, rec), nil
	})
}

// CreateIfEmpty は1人もいない場合のみ作成する。作成したら true。
func (s *Store) CreateIfEmpty(ctx context.Context, rec UserRecord) (bool, error) {
	created := false
	err := s.users.Update(ctx, func(items []UserRecord) ([]UserRecord, error) {
		if len(items) > 0 {
			return nil, errStop
		}
		created = true
		return []UserRecord{rec}, nil
	})
	if errors.Is(err, errStop) {
		return false, nil
	}
	return created, err
}

func (s *Store) Delete(ctx context.Context, email string) error {
	_, err := s.users.RemoveByID(ctx, normalizeEmail(email))
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Store) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	email = normalizeEmail(email)
	return s.users.Update(ctx, func(items []UserRecord) ([]UserRecord, error) {
		for i := range items {
			if normalizeEmail(items[i].Email) == email {
				items[i].PasswordHash = hash
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}
