package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/courier/internal/api"
	"github.com/shaharia-lab/courier/internal/config"
	"github.com/shaharia-lab/courier/internal/logger"
	"github.com/shaharia-lab/courier/internal/metrics"
	"github.com/shaharia-lab/courier/internal/notification"
	"github.com/shaharia-lab/courier/internal/server"
	"github.com/shaharia-lab/courier/internal/service"
	"github.com/shaharia-lab/courier/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP API server for sending notifications and inspecting the delivery log.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
	serveCmd.Flags().String("providers-file", "", "Path to the provider registry YAML file (overrides COURIER_PROVIDERS_FILE env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("providers-file") {
		cfg.ProvidersFile, _ = cmd.Flags().GetString("providers-file")
	}

	log, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := storage.NewSQLiteDB(cfg.DatabaseFile())
	if err != nil {
		return fmt.Errorf("opening delivery log database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("closing database", slog.String("error", cerr.Error()))
		}
	}()

	providersCfg, err := config.LoadProviderRegistry(cfg.ProvidersFile)
	if err != nil {
		return fmt.Errorf("loading provider registry: %w", err)
	}
	registry := buildRegistry(providersCfg, log)

	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	svc := service.New(registry, storage.NewSQLiteDeliveryStore(db), m, log, cfg.AsyncWorkers, cfg.AsyncQueueSize)
	defer svc.Close()

	srv := server.New(api.New(svc, log), promReg, cfg.Port, log)

	fmt.Fprintf(os.Stderr, "Courier HTTP server running on http://localhost:%d\n", cfg.Port)
	fmt.Fprintf(os.Stderr, "  POST /api/notifications        → synchronous send\n")
	fmt.Fprintf(os.Stderr, "  POST /api/notifications/async  → queued send\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/deliveries           → delivery log\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/providers            → registered providers\n")
	fmt.Fprintf(os.Stderr, "  GET  /metrics                  → Prometheus metrics\n")
	fmt.Fprintf(os.Stderr, "  GET  /health                   → health check\n")

	return srv.Run(ctx)
}

// buildRegistry registers a provider for every enabled channel in the
// registry file. The email channel can swap the simulated provider for
// the real SMTP transport.
func buildRegistry(cfg *config.ProviderRegistry, log *slog.Logger) *notification.Registry {
	registry := notification.NewRegistry(log)

	if cfg.Email.Enabled {
		if cfg.Email.Transport == "smtp" {
			registry.Register(notification.NewSMTPProvider(notification.SMTPConfig{
				Host:       cfg.Email.SMTP.Host,
				Port:       cfg.Email.SMTP.Port,
				Username:   cfg.Email.SMTP.Username,
				Password:   cfg.Email.SMTP.Password,
				FromAddr:   cfg.Email.SMTP.FromAddr,
				Encryption: cfg.Email.SMTP.Encryption,
			}))
		} else {
			registry.Register(notification.NewEmailProvider(notification.EmailProviderConfig{
				From:      cfg.Email.From,
				APIKey:    cfg.Email.APIKey,
				FailSends: cfg.Email.FailSends,
			}, log))
		}
	}
	if cfg.SMS.Enabled {
		registry.Register(notification.NewSMSProvider(notification.SMSProviderConfig{
			SenderID:  cfg.SMS.SenderID,
			APIKey:    cfg.SMS.APIKey,
			FailSends: cfg.SMS.FailSends,
		}, log))
	}
	if cfg.Push.Enabled {
		registry.Register(notification.NewPushProvider(notification.PushProviderConfig{
			AppID:     cfg.Push.AppID,
			APIKey:    cfg.Push.APIKey,
			FailSends: cfg.Push.FailSends,
		}, log))
	}
	if cfg.Slack.Enabled {
		registry.Register(notification.NewSlackProvider(notification.SlackProviderConfig{
			BotName:   cfg.Slack.BotName,
			APIKey:    cfg.Slack.APIKey,
			FailSends: cfg.Slack.FailSends,
		}, log))
	}
	return registry
}
