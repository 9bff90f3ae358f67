package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"PRESENCE-backend/internal/attendance"
	"PRESENCE-backend/internal/calendar"
	"PRESENCE-backend/internal/dbmng"
	"PRESENCE-backend/internal/platform/auth"
	"PRESENCE-backend/internal/platform/db"
	"PRESENCE-backend/internal/platform/kv"
	"PRESENCE-backend/internal/report"
	"PRESENCE-backend/internal/school"
	"PRESENCE-backend/internal/server"
)

// @title                      PRESENCE API
// @version                    1.0
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	configPath := flag.String("config", db.DefaultConfigPath, "config file")
	flag.Parse()

	// 設定読み込み
	cfg, err := db.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[INFO] mode:%s\n", cfg.Mode)

	if cfg.Auth.JWTSecret == "" {
		if cfg.Mode == "release" {
			log.Fatal("[ERROR] auth.jwt_secret (or PRESENCE_JWT_SECRET) is required in release mode")
		}
		cfg.Auth.JWTSecret = "dev-only-secret"
		log.Println("[WARN] jwt_secret is empty; using a dev-only secret")
	}

	store, closeStore, err := openStore(cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	ctx := context.Background()
	authSvc := auth.NewService(store, auth.Options{
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	if _, err := authSvc.EnsureBootstrapped(ctx, auth.Bootstrap{
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Name:     cfg.Bootstrap.AdminName,
	}); err != nil {
		log.Fatal(err)
	}

	policy := calendar.DefaultPolicy()
	schoolSvc := school.NewService(store)
	attSvc := attendance.NewService(store, schoolSvc, attendance.Options{
		RejectDisabledDates: cfg.School.RejectDisabledDates,
		Policy:              policy,
	})

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(server.Deps{
		Mode:       cfg.Mode,
		Auth:       authSvc,
		School:     schoolSvc,
		Attendance: attSvc,
		Reports:    report.NewService(schoolSvc, attSvc),
		Backup:     dbmng.NewService(store, schoolSvc),
		Policy:     policy,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cfg.TLSEnabled() {
			log.Printf("[INFO] listening on https://%s", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(cfg.Server.Certificate.Cert, cfg.Server.Certificate.Key)
		} else {
			log.Printf("[INFO] listening on http://%s", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// openStore: driver=memory はプロセス内のみ（再起動で消える）
func openStore(c db.DatabaseConfig) (kv.Store, func(), error) {
	if c.Driver == db.DriverMemory {
		log.Println("[WARN] using in-memory store; data is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil
	}

	conn, err := db.Connect(c)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[INFO] connected to DB: %s (%s)", c.DBName, c.Driver)

	store, err := kv.NewSQLStore(conn, c.Driver)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Migrate(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return store, func() { conn.Close() }, nil
}
