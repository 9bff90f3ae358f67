package school

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/textenc"
)

type Handler struct{ svc *Service }

// RegisterRoutes: 参照は全ユーザー、変更系は admin グループ側に登録する
func RegisterRoutes(read gin.IRoutes, admin gin.IRoutes, svc *Service) {
	if err := RegisterValidation(); err != nil {
		log.Printf("[WARN] nationalid validator: %v", err)
	}
	h := &Handler{svc: svc}

	// GET /config
	read.GET("/config", h.GetConfig)

	// PUT /config (丸ごと置き換え)
	admin.PUT("/config", h.SaveConfig)

	// 教員マスタ
	admin.POST("/config/teachers", h.AddTeacher)
	admin.PUT("/config/teachers/:id", h.UpdateTeacher)
	admin.DELETE("/config/teachers/:id", h.RemoveTeacher)
	admin.POST("/config/teachers/import", h.ImportTeachers)
}

// GetConfig godoc
// @Summary  学校設定の取得
// @Tags     config
// @Produce  json
// @Success  200 {object} Config
// @Security BearerAuth
// @Router   /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SaveConfig godoc
// @Summary  学校設定の保存
// @Tags     config
// @Accept   json
// @Produce  json
// @Param    body body Config true "config"
// @Success  200 {object} Config
// @Failure  400 {object} apierr.ErrorBody
// @Security BearerAuth
// @Router   /config [put]
func (h *Handler) SaveConfig(c *gin.Context) {
	var req Config
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid("البيانات المرسلة غير صالحة"))
		return
	}
	cfg, err := h.svc.Save(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) AddTeacher(c *gin.Context) {
	var req TeacherInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid(bindMessage(err)))
		return
	}
	t, err := h.svc.AddTeacher(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/api/v1/config/teachers/"+t.ID)
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTeacher(c *gin.Context) {
	var req TeacherInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid(bindMessage(err)))
		return
	}
	t, err := h.svc.UpdateTeacher(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) RemoveTeacher(c *gin.Context) {
	if err := h.svc.RemoveTeacher(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportTeachers godoc
// @Summary  教員の一括取り込み (CSV: 名前, 身分証番号, 電話)
// @Tags     config
// @Accept   multipart/form-data
// @Produce  json
// @Param    file     formData file   true  "CSV"
// @Param    encoding query    string false "utf-8 | windows-1256"
// @Success  201 {object} ImportResult
// @Failure  400 {object} importErrorBody
// @Security BearerAuth
// @Router   /config/teachers/import [post]
func (h *Handler) ImportTeachers(c *gin.Context) {
	enc := c.DefaultQuery("encoding", textenc.UTF8)
	if !textenc.Supported(enc) {
		apierr.Respond(c, apierr.Invalidf("ترميز غير مدعوم: %s", enc))
		return
	}

	// multipart の file があればそれを、無ければ本文をそのまま CSV とみなす
	var src io.Reader = c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			apierr.Respond(c, apierr.ErrInvalid("تعذر قراءة الملف"))
			return
		}
		defer f.Close()
		src = f
	}

	rows, err := ParseTeacherCSV(src, enc)
	if err != nil {
		apierr.Respond(c, apierr.ErrInvalid("تعذر قراءة الملف"))
		return
	}
	res, err := h.svc.ImportTeachers(c.Request.Context(), rows)
	if err != nil {
		if len(res.Errors) > 0 {
			c.JSON(apierr.ToHTTPStatus(err), importErrorBody{ErrorBody: apierr.Body(err), Rows: res.Errors})
			return
		}
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type importErrorBody struct {
	apierr.ErrorBody
	Rows []RowError `json:"rows"`
}
