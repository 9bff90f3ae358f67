package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "PRESENCE-backend/docs"
	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/calendar"
	"PRESENCE-backend/internal/dbmng"
	"PRESENCE-backend/internal/platform/apierr"
	"PRESENCE-backend/internal/platform/auth"
	"PRESENCE-backend/internal/report"
	"PRESENCE-backend/internal/school"
)

const MsgNoRoute = "المسار غير موجود"

type Deps struct {
	Mode       string // dev | release
	Auth       *auth.Service
	School     *school.Service
	Attendance *attendance.Service
	Reports    *report.Service
	Backup     *dbmng.Service
	Policy     calendar.Policy
	// dev で許可するフロントのオリジン
	AllowOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if d.Mode == "dev" {
		// CORS（開発中のみ必要）
		origins := d.AllowOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000", "http://localhost:5173"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api/v1")
	authed := api.Group("", auth.RequireAuth(d.Auth))
	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))

	auth.RegisterRoutes(api, authed, admin, d.Auth)
	calendar.RegisterRoutes(authed, d.Policy)
	school.RegisterRoutes(authed, admin, d.School)
	attendance.RegisterRoutes(authed, d.Attendance)
	report.RegisterRoutes(authed, d.Reports)
	dbmng.RegisterRoutes(admin, d.Backup)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			apierr.Respond(c, apierr.ErrNotFound(MsgNoRoute))
			return
		}
		c.Status(http.StatusNotFound)
	})
	return r
}
