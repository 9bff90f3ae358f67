package dbmng

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

// RegisterRoutes: admin グループに登録する
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/admin/backup", h.Backup)
	r.POST("/admin/restore", h.Restore)
}

func (h *Handler) Backup(c *gin.Context) {
	b, err := h.svc.Dump(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	name := fmt.Sprintf("presence-backup-%s.json", b.CreatedAt.Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.JSON(http.StatusOK, b)
}

func (h *Handler) Restore(c *gin.Context) {
	var b Backup
	if err := c.ShouldBindJSON(&b); err != nil {
		apierr.Respond(c, apierr.ErrInvalid("البيانات المرسلة غير صالحة"))
		return
	}
	res, err := h.svc.Restore(c.Request.Context(), b)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
