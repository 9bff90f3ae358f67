package attendance

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/textenc"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 欠勤
	r.GET("/absences", h.ListAbsences)
	r.GET("/absences/exists", h.AbsenceExists)
	r.POST("/absences", h.RecordAbsence)
	r.DELETE("/absences/:id", h.DeleteAbsence)

	// 遅刻
	r.GET("/tardiness", h.ListTardiness)
	r.POST("/tardiness", h.RecordTardiness)
	r.DELETE("/tardiness/:id", h.DeleteTardiness)

	// 集計・教員詳細
	r.GET("/statistics", h.Statistics)
	r.GET("/teachers/:id/summary", h.TeacherSummary)

	// CSV
	r.GET("/export/absences.csv", h.ExportAbsences)
	r.GET("/export/tardiness.csv", h.ExportTardiness)
}

func listQuery(c *gin.Context) ListQuery {
	return ListQuery{
		TeacherID: c.Query("teacher_id"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
}

// RecordAbsence godoc
// @Summary  欠勤の登録
// @Tags     absences
// @Accept   json
// @Produce  json
// @Param    body body CreateAbsenceRequest true "teacherId, date"
// @Success  201 {object} AbsenceRecord
// @Failure  400 {object} apierr.ErrorBody
// @Failure  409 {object} apierr.ErrorBody
// @Security BearerAuth
// @Router   /absences [post]
func (h *Handler) RecordAbsence(c *gin.Context) {
	var req CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid("البيانات المرسلة غير صالحة"))
		return
	}
	rec, err := h.svc.RecordAbsence(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/api/v1/absences/"+rec.ID)
	c.JSON(http.StatusCreated, rec)
}

// RecordTardiness godoc
// @Summary  遅刻の登録（締め時刻より後の到着のみ）
// @Tags     tardiness
// @Accept   json
// @Produce  json
// @Param    body body CreateTardinessRequest true "teacherId, date, arrivalTime"
// @Success  201 {object} TardinessRecord
// @Failure  400 {object} apierr.ErrorBody
// @Security BearerAuth
// @Router   /tardiness [post]
func (h *Handler) RecordTardiness(c *gin.Context) {
	var req CreateTardinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.ErrInvalid("البيانات المرسلة غير صالحة"))
		return
	}
	rec, err := h.svc.RecordTardiness(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/api/v1/tardiness/"+rec.ID)
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) ListAbsences(c *gin.Context) {
	res, err := h.svc.ListAbsences(c.Request.Context(), listQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListTardiness(c *gin.Context) {
	res, err := h.svc.ListTardiness(c.Request.Context(), listQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /absences/exists?teacher_id=&date=
func (h *Handler) AbsenceExists(c *gin.Context) {
	ok, err := h.svc.AbsenceExists(c.Request.Context(), c.Query("teacher_id"), c.Query("date"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ExistsResponse{Exists: ok})
}

func (h *Handler) DeleteAbsence(c *gin.Context) {
	if err := h.svc.DeleteAbsence(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteTardiness(c *gin.Context) {
	if err := h.svc.DeleteTardiness(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Statistics godoc
// @Summary  教員別の欠勤・遅刻集計（多い順）
// @Tags     statistics
// @Produce  json
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {object} Statistics
// @Security BearerAuth
// @Router   /statistics [get]
func (h *Handler) Statistics(c *gin.Context) {
	res, err := h.svc.Statistics(c.Request.Context(), listQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) TeacherSummary(c *gin.Context) {
	res, err := h.svc.TeacherSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ExportAbsences(c *gin.Context) {
	h.export(c, "absences.csv", h.svc.ExportAbsences)
}

func (h *Handler) ExportTardiness(c *gin.Context) {
	h.export(c, "tardiness.csv", h.svc.ExportTardiness)
}

// CSV はバッファに書き切ってから返す
func (h *Handler) export(c *gin.Context, filename string, fn func(context.Context, io.Writer, ListQuery, string) error) {
	enc := c.DefaultQuery("encoding", textenc.UTF8)
	if !textenc.Supported(enc) {
		apierr.Respond(c, apierr.Invalidf("ترميز غير مدعوم: %s", enc))
		return
	}
	var buf bytes.Buffer
	if err := fn(c.Request.Context(), &buf, listQuery(c), enc); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset="+textenc.Canonical(enc), buf.Bytes())
}
