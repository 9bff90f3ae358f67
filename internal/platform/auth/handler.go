package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/platform/apierr"
)

const MsgBadRequest = "البيانات المرسلة غير صحيحة"

type AuthHandler struct{ svc *Service }

// RegisterRoutes: public はログインのみ、authed はログイン済み、admin は管理者専用
func RegisterRoutes(public, authed, admin gin.IRoutes, svc *Service) {
	h := &AuthHandler{svc: svc}
	public.POST("/auth/login", h.Login)

	authed.GET("/auth/me", h.Me)
	authed.PUT("/users/:email/password", h.UpdatePassword)

	admin.GET("/users", h.List)
	admin.POST("/users", h.Add)
	admin.DELETE("/users/:email", h.Delete)
}

// Login godoc
// @Summary  ログイン
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} apierr.ErrorBody
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 形式不正もログイン失敗として扱う
		apierr.Respond(c, apierr.ErrUnauthorized(MsgBadCredentials))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	rec, err := h.svc.store.GetByEmail(c.Request.Context(), c.GetString(CtxEmailKey))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if rec == nil {
		apierr.Respond(c, apierr.ErrNotFound(MsgUserNotFound))
		return
	}
	c.JSON(http.StatusOK, UserResponse{Success: true, User: rec.User})
}

func (h *AuthHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ListUsersResponse{Success: true, Users: users})
}

// Add godoc
// @Summary  ユーザー追加
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body AddUserRequest true "user"
// @Success  201 {object} UserResponse
// @Failure  409 {object} apierr.ErrorBody
// @Security BearerAuth
// @Router   /users [post]
func (h *AuthHandler) Add(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid(MsgBadRequest))
		return
	}
	u, err := h.svc.AddUser(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, UserResponse{Success: true, User: u})
}

func (h *AuthHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.GetString(CtxEmailKey), c.Param("email")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{Success: true})
}

// UpdatePassword: 管理者は全員、一般ユーザーは自分のみ
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	target := c.Param("email")
	if c.GetString(CtxRoleKey) != RoleAdmin && normalizeEmail(target) != normalizeEmail(c.GetString(CtxEmailKey)) {
		apierr.Respond(c, apierr.ErrForbidden(MsgForbidden))
		return
	}
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid(MsgBadRequest))
		return
	}
	if err := h.svc.UpdatePassword(c.Request.Context(), target, req.Password); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{Success: true})
}
