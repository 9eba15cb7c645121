package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blood-donor-service/internal/app"
	"blood-donor-service/internal/core/config"
	"blood-donor-service/internal/core/logger"
	"blood-donor-service/internal/core/server"
	"blood-donor-service/internal/transport/http/handler"
	"blood-donor-service/internal/transport/http/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin listing API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadE(configPath)
		if err != nil {
			return err
		}
		log, cleanup := logger.New(cfg.Log)
		defer cleanup()

		deps, closeDeps, err := app.Build(cfg, log)
		if err != nil {
			return err
		}
		defer closeDeps()

		r := router.NewAdminEngine(log, cfg.Limits, handler.NewAdminHandler(deps.Svc, log.Named("admin")))
		addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
		srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

		host4human := cfg.App.Admin.Host
		if host4human == "" || host4human == "0.0.0.0" {
			host4human = "127.0.0.1"
		}
		baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
		log.Info("admin api starting",
			zap.String("addr", addr),
			zap.String("users", baseURL+"/admin/v1/users"),
			zap.String("blood_requests", baseURL+"/admin/v1/blood-requests"),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, srv, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
