package calendar

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/platform/apierr"
)

const (
	MsgBadDate  = "التاريخ غير صحيح"
	MsgBadFlag  = "قيمة غير صحيحة: %s"
	MsgTooEarly = "التاريخ قبل بداية التقويم الهجري"
)

type Handler struct{ policy Policy }

type NearestValidResponse struct {
	Requested string  `json:"requested"`
	Date      string  `json:"date"`
	Changed   bool    `json:"changed"`
	Display   Display `json:"display"`
}

func RegisterRoutes(r gin.IRoutes, policy Policy) {
	h := &Handler{policy: policy}
	r.GET("/calendar/hijri", h.Hijri)
	r.GET("/calendar/nearest-valid", h.NearestValid)
}

// date が空なら今日
func (h *Handler) date(c *gin.Context) (string, bool) {
	s := c.Query("date")
	if s == "" {
		return h.policy.Today().Format(DateLayout), true
	}
	if _, err := ParseDate(s); err != nil {
		apierr.Respond(c, apierr.ErrInvalid(MsgBadDate))
		return "", false
	}
	return s, true
}

// Hijri godoc
// @Summary  グレゴリオ暦の日付をヒジュラ暦で表示
// @Tags     calendar
// @Produce  json
// @Param    date query string false "YYYY-MM-DD"
// @Success  200 {object} Display
// @Failure  400 {object} apierr.ErrorBody
// @Security BearerAuth
// @Router   /calendar/hijri [get]
func (h *Handler) Hijri(c *gin.Context) {
	s, ok := h.date(c)
	if !ok {
		return
	}
	t, _ := ParseDate(s)
	if _, err := ToHijriChecked(t); err != nil {
		apierr.Respond(c, apierr.ErrInvalid(MsgTooEarly))
		return
	}
	c.JSON(http.StatusOK, Describe(t))
}

func (h *Handler) NearestValid(c *gin.Context) {
	s, ok := h.date(c)
	if !ok {
		return
	}
	p := h.policy
	for name, dst := range map[string]*bool{
		"exclude_weekends": &p.ExcludeWeekends,
		"disable_future":   &p.DisableFuture,
	} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			apierr.Respond(c, apierr.Invalidf(MsgBadFlag, name))
			return
		}
		*dst = b
	}

	t, _ := ParseDate(s)
	d := p.NearestValid(t)
	c.JSON(http.StatusOK, NearestValidResponse{
		Requested: s,
		Date:      d.Format(DateLayout),
		Changed:   !d.Equal(t),
		Display:   Describe(d),
	})
}
