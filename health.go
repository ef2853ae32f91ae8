package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fivem-community/store"

	"github.com/alexliesenfeld/health"
	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func newHealthHandler(s *discordgo.Session, st *store.Store, logger *zap.Logger) http.Handler {
	checker := health.NewChecker(
		health.WithCacheDuration(1*time.Second),
		health.WithTimeout(2*time.Second),

		// The data file must stay rewritable, every mutation depends on it.
		health.WithCheck(health.Check{
			Name: "store",
			Check: func(ctx context.Context) error {
				if err := st.Ping(); err != nil {
					return fmt.Errorf("failed to rewrite data file: %w", err)
				}
				return nil
			},
			Timeout: 2 * time.Second,
		}),

		health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "discord_api",
			Check: func(ctx context.Context) error {
				if _, err := s.GatewayBot(); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout: 3 * time.Second,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				logger.Info("Discord API health check status changed",
					zap.String("name", name),
					zap.String("state", string(state.Status)),
				)
			},
		}),
	)

	return health.NewHandler(checker)
}

func serveMonitoring(addr string, s *discordgo.Session, st *store.Store, logger *zap.Logger) {
	r := mux.NewRouter()

	r.Handle("/healthz", newHealthHandler(s, st, logger))
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("Monitoring server listening", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("Monitoring server stopped", zap.Error(err))
	}
}
