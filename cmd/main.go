package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/streamgate/internal/config"
	"github.com/Vovarama1992/streamgate/internal/delivery"
	"github.com/Vovarama1992/streamgate/internal/domain"
	"github.com/Vovarama1992/streamgate/internal/infra"
	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// ENV
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	// REDIS (optional, revocation denylist)
	var revocations ports.RevocationList

	if cfg.RedisURL != "" {
		rdb, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			panic("cannot connect redis: " + err.Error())
		}
		defer rdb.Close()

		revocations = infra.NewRedisRevocationList(rdb)
	}

	// SERVICES
	sessions := domain.NewSessionService(cfg.AuthSecret)
	codec := domain.NewTokenService(cfg.VideoSecret)
	rewriter := domain.NewManifestRewriter(cfg.OriginBase)

	entitlements := infra.NewPostgresEntitlementRepo(pool)
	origin := infra.NewStreamOriginClient(cfg.OriginBase, cfg.UpstreamTimeout)

	// HANDLERS
	hToken := delivery.NewTokenHandler(codec, entitlements, revocations, cfg.TokenTTL, zl)
	hProxy := delivery.NewProxyHandler(codec, origin, rewriter, revocations, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth", "Authorization"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, sessions, hToken, hProxy)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port, "customer": cfg.CustomerCode},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
