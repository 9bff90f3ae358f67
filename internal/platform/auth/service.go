package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/ids"
	"PRESENCE-backend/internal/platform/kv"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

const (
	MsgBadCredentials = "البريد الإلكتروني أو كلمة المرور غير صحيحة"
	MsgEmailTaken     = "البريد الإلكتروني مستخدم بالفعل"
	MsgUserNotFound   = "المستخدم غير موجود"
	MsgSelfDelete     = "لا يمكنك حذف حسابك الخاص"
	MsgBadRole        = "الصلاحية يجب أن تكون admin أو user"
	MsgNameRequired   = "يرجى إدخال الاسم"
)

// Claims: JWT のペイロード（sub = ユーザーID）
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Options struct {
	JWTSecret []byte
	TokenTTL  time.Duration
}

type Service struct {
	store  *Store
	secret []byte
	ttl    time.Duration
	clock  ids.Clock
	id     ids.IDGen
	cost   int
}

func NewService(s kv.Store, opts Options) *Service {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		store:  NewStore(s),
		secret: opts.JWTSecret,
		ttl:    ttl,
		clock:  ids.RealClock{},
		id:     ids.UUID{},
		cost:   bcrypt.DefaultCost,
	}
}

func (s *Service) Secret() []byte { return s.secret }

// Login: 成功時はトークンとプロフィール
func (s *Service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	rec, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, err
	}
	if rec == nil {
		return LoginResponse{}, apierr.ErrUnauthorized(MsgBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return LoginResponse{}, apierr.ErrUnauthorized(MsgBadCredentials)
	}

	now := s.clock.Now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: rec.User.Email,
		Role:  rec.User.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rec.User.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}
	log.Printf("[INFO] login: %s", rec.User.Email)
	return LoginResponse{Success: true, Token: signed, ExpiresAt: exp.UTC(), User: rec.User}, nil
}

// ParseToken は署名と有効期限を検証する（HS256 のみ）
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(all))
	for _, r := range all {
		out = append(out, UserView{Email: r.Email, User: r.User})
	}
	return out, nil
}

func (s *Service) AddUser(ctx context.Context, in AddUserRequest) (User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return User{}, apierr.ErrInvalid(MsgNameRequired)
	}
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	if role != RoleAdmin && role != RoleUser {
		return User{}, apierr.ErrInvalid(MsgBadRole)
	}
	id, err := s.id.New()
	if err != nil {
		return User{}, fmt.Errorf("user id: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	u := User{ID: id, Email: email, Name: name, Role: role, CreatedAt: s.clock.Now().UTC()}
	if err := s.store.Create(ctx, UserRecord{Email: email, PasswordHash: string(hash), User: u}); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, apierr.ErrConflict(MsgEmailTaken)
		}
		return User{}, err
	}
	log.Printf("[INFO] user added: %s (%s)", u.Email, u.Role)
	return u, nil
}

// DeleteUser: 自分自身は削除できない
func (s *Service) DeleteUser(ctx context.Context, actorEmail, email string) error {
	if normalizeEmail(actorEmail) == normalizeEmail(email) {
		return apierr.ErrForbidden(MsgSelfDelete)
	}
	if err := s.store.Delete(ctx, email); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierr.ErrNotFound(MsgUserNotFound)
		}
		return err
	}
	log.Printf("[INFO] user deleted: %s by %s", normalizeEmail(email), normalizeEmail(actorEmail))
	return nil
}

func (s *Service) UpdatePassword(ctx context.Context, email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, email, string(hash)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierr.ErrNotFound(MsgUserNotFound)
		}
		return err
	}
	return nil
}

// Bootstrap: 初回起動時の管理者
type Bootstrap struct {
	Email    string
	Password string
	Name     string
}

// EnsureBootstrapped はユーザーが1人もいなければ管理者を作る。作成したら true。
func (s *Service) EnsureBootstrapped(ctx context.Context, b Bootstrap) (bool, error) {
	if b.Email == "" {
		b.Email = "admin@presence.app"
	}
	if b.Password == "" {
		b.Password = "admin123"
	}
	if b.Name == "" {
		b.Name = "مدير النظام"
	}
	id, err := s.id.New()
	if err != nil {
		return false, fmt.Errorf("user id: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), s.cost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	email := normalizeEmail(b.Email)
	created, err := s.store.CreateIfEmpty(ctx, UserRecord{
		Email:        email,
		PasswordHash: string(hash),
		User:         User{ID: id, Email: email, Name: b.Name, Role: RoleAdmin, CreatedAt: s.clock.Now().UTC()},
	})
	if err != nil {
		return false, err
	}
	if created {
		log.Printf("[WARN] default admin %s created; change its password", email)
	}
	return created, nil
}
