package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/lateness"
	"PRESENCE-backend/internal/platform/apierr"
)

const (
	FormatHTML = "html"
	FormatText = "text"
	FormatJSON = "json"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 印刷用ページ（format=html が既定）
	r.GET("/reports/absence", h.Absence)
	r.GET("/reports/tardiness", h.Tardiness)
	r.GET("/reports/statistics", h.Statistics)
}

func request(c *gin.Context) Request {
	return Request{
		TeacherID: c.Query("teacher_id"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		Locale:    lateness.ParseLocale(c.DefaultQuery("lang", string(lateness.Arabic))),
	}
}

func format(c *gin.Context) (string, bool) {
	switch f := c.DefaultQuery("format", FormatHTML); f {
	case FormatHTML, FormatText, FormatJSON:
		return f, true
	default:
		apierr.Respond(c, apierr.Invalidf("صيغة غير مدعومة: %s", f))
		return "", false
	}
}

// Absence godoc
// @Summary  欠勤の説明要求文書
// @Tags     reports
// @Produce  html
// @Param    teacher_id query string true  "teacher id"
// @Param    from       query string false "YYYY-MM-DD"
// @Param    to         query string false "YYYY-MM-DD"
// @Param    format     query string false "html | text | json"
// @Success  200 {object} Letter
// @Failure  404 {object} apierr.ErrorBody
// @Security BearerAuth
// @Router   /reports/absence [get]
func (h *Handler) Absence(c *gin.Context) {
	f, ok := format(c)
	if !ok {
		return
	}
	l, err := h.svc.AbsenceLetter(c.Request.Context(), request(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	writeLetter(c, f, l)
}

func (h *Handler) Tardiness(c *gin.Context) {
	f, ok := format(c)
	if !ok {
		return
	}
	l, err := h.svc.TardinessLetter(c.Request.Context(), request(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	writeLetter(c, f, l)
}

func (h *Handler) Statistics(c *gin.Context) {
	f, ok := format(c)
	if !ok {
		return
	}
	doc, err := h.svc.Statistics(c.Request.Context(), request(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	switch f {
	case FormatText:
		c.String(http.StatusOK, doc.Text())
	case FormatJSON:
		c.JSON(http.StatusOK, doc)
	default:
		c.Render(http.StatusOK, statisticsPage(doc))
	}
}

func writeLetter(c *gin.Context, f string, l Letter) {
	switch f {
	case FormatText:
		c.String(http.StatusOK, l.Text)
	case FormatJSON:
		c.JSON(http.StatusOK, l)
	default:
		c.Render(http.StatusOK, letterPage(l))
	}
}
