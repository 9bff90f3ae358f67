package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/platform/apierr"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
	CtxEmailKey  = "email"
)

const (
	MsgLoginRequired = "يرجى تسجيل الدخول"
	MsgBadToken      = "انتهت الجلسة، يرجى تسجيل الدخول مرة أخرى"
	MsgForbidden     = "ليس لديك صلاحية لهذا الإجراء"
)

// TokenParser は RequireAuth が使う検証部分
type TokenParser interface {
	ParseToken(token string) (*Claims, error)
}

// RequireAuth: Authorization: Bearer <token> を検証して context に sub/role/email を詰める
func RequireAuth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			apierr.Abort(c, apierr.ErrUnauthorized(MsgLoginRequired))
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			apierr.Abort(c, apierr.ErrUnauthorized(MsgLoginRequired))
			return
		}

		claims, err := p.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			apierr.Abort(c, apierr.ErrUnauthorized(MsgBadToken))
			return
		}

		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxRoleKey, claims.Role)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}

// RequireRole: 例) admin のみ許可したい時に追加
func RequireRole(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		if r == "" {
			continue
		}
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := roleSet[c.GetString(CtxRoleKey)]; !ok {
			apierr.Abort(c, apierr.ErrForbidden(MsgForbidden))
			return
		}
		c.Next()
	}
}
