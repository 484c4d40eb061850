package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/devexp/devexp-go-client/webhook"
)

var (
	webhookSecret    string
	webhookSignature string
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Sign and verify webhook payloads",
}

var webhookSignCmd = &cobra.Command{
	Use:   "sign FILE",
	Short: "Print the Authorization header value for a payload",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := readPayload(args[0])
		fmt.Println("Signature " + webhook.Sign(body, secret()))
	},
}

var webhookVerifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check a payload against its Authorization header value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := readPayload(args[0])
		if !webhook.VerifySignature(body, webhookSignature, secret()) {
			slog.Error("Signature does not match", "file", args[0])
			os.Exit(1)
		}
		slog.Info("Signature is valid", "file", args[0])
	},
}

func init() {
	webhookCmd.PersistentFlags().StringVar(&webhookSecret, "secret", "", "webhook secret (defaults to DEVEXP_WEBHOOK_SECRET)")
	webhookVerifyCmd.Flags().StringVar(&webhookSignature, "signature", "", `Authorization header value, e.g. "Signature 5f2c..."`)
	_ = webhookVerifyCmd.MarkFlagRequired("signature")

	webhookCmd.AddCommand(webhookSignCmd, webhookVerifyCmd)
	rootCmd.AddCommand(webhookCmd)
}

func secret() string {
	if webhookSecret != "" {
		return webhookSecret
	}
	return os.Getenv("DEVEXP_WEBHOOK_SECRET")
}

func readPayload(path string) string {
	setupLogging("info")

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read payload", "error", err)
		os.Exit(1)
	}
	return string(data)
}
