package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/courier/internal/config"
	"github.com/shaharia-lab/courier/internal/logger"
	"github.com/shaharia-lab/courier/internal/notification"
	"github.com/shaharia-lab/courier/internal/service"
	"github.com/shaharia-lab/courier/internal/storage"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a single notification from the command line",
	Long: `Send a single notification from the command line.

Examples:
  courier send --channel email --to user@example.com --message "Hello {{name}}" --var name=Sam
  courier send --channel sms --phone "+14155552671" --message "Your code is {{otp}}" --var otp=123456
  courier send --to user@example.com --message "Channel is inferred from contact data"`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().String("channel", "", "Delivery channel (email, sms, push, slack); inferred when omitted")
	sendCmd.Flags().String("to", "", "Recipient email address")
	sendCmd.Flags().String("phone", "", "Recipient phone number")
	sendCmd.Flags().String("message", "", "Message body, may contain {{placeholders}}")
	sendCmd.Flags().String("priority", "", "Priority (low, normal, high, critical)")
	sendCmd.Flags().StringArray("var", nil, "Template variable as key=value (repeatable)")
	sendCmd.Flags().StringArray("meta", nil, "Recipient metadata as key=value (repeatable)")
	_ = sendCmd.MarkFlagRequired("message")
}

func runSend(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewCLILogger(cfg.SlogLevel())

	providersCfg, err := config.LoadProviderRegistry(cfg.ProvidersFile)
	if err != nil {
		return fmt.Errorf("loading provider registry: %w", err)
	}
	registry := buildRegistry(providersCfg, log)

	db, err := storage.NewSQLiteDB(cfg.DatabaseFile())
	if err != nil {
		return fmt.Errorf("opening delivery log database: %w", err)
	}
	defer db.Close()

	svc := service.New(registry, storage.NewSQLiteDeliveryStore(db), nil, log, 1, 1)
	defer svc.Close()

	email, _ := cmd.Flags().GetString("to")
	phone, _ := cmd.Flags().GetString("phone")
	message, _ := cmd.Flags().GetString("message")
	priority, _ := cmd.Flags().GetString("priority")
	varFlags, _ := cmd.Flags().GetStringArray("var")
	metaFlags, _ := cmd.Flags().GetStringArray("meta")

	vars, err := parseKeyValues(varFlags)
	if err != nil {
		return fmt.Errorf("parsing --var: %w", err)
	}
	meta, err := parseKeyValues(metaFlags)
	if err != nil {
		return fmt.Errorf("parsing --meta: %w", err)
	}

	rcpt := notification.NewRecipient(email, phone, meta)
	n := notification.New("", rcpt, message, notification.ParsePriority(priority), vars)

	ctx := context.Background()
	var res *notification.Result
	if channelFlag, _ := cmd.Flags().GetString("channel"); channelFlag != "" {
		channel, err := notification.ParseChannel(channelFlag)
		if err != nil {
			return err
		}
		res, err = svc.Send(ctx, n, channel)
		if err != nil {
			return err
		}
	} else {
		res, err = svc.SendAuto(ctx, n)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// parseKeyValues converts repeated key=value flags into a map. nil input
// stays nil so that "no --var flags" means "no template context".
func parseKeyValues(pairs []string) (map[string]string, error) {
	if pairs == nil {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}
