package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/developerDesinger/Transporter-backend-sub004/internal/auth"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/config"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/httpapi"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/obs"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.AuthSecret, cfg.JWTIssuer, cfg.TokenTTLDuration())
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}
	resolver, err := auth.NewResolver(auth.DefaultRoleTable())
	if err != nil {
		log.Fatalf("role table: %v", err)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("config: DATABASE_URL must be set")
	}
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	users := auth.NewPGUserStore(db)
	memberships := auth.NewCachedMembershipStore(
		auth.NewPGMembershipStore(db),
		cfg.MembershipCacheSize,
		cfg.MembershipCacheTTLDuration(),
	)

	api := httpapi.New(httpapi.Deps{
		Ready:         httpapi.ReadyProbe{DB: db},
		Version:       version,
		Issuer:        issuer,
		Resolver:      resolver,
		Users:         users,
		Memberships:   memberships,
		RateBurst:     cfg.RateBurst,
		RatePerSecond: cfg.RatePerSecond,
		MaxBodyBytes:  cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting transporter-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
