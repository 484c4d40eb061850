package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	client "github.com/devexp/devexp-go-client"
)

var (
	messageFrom    string
	messageContent string
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Send and inspect messages",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages",
	Run: func(cmd *cobra.Command, args []string) {
		s := connect()
		defer s.close()

		page, err := s.client.Messages().ListMessages(s.ctx)
		if err != nil {
			fail("Failed to list messages", err)
		}

		printMessages(page.Items)
	},
}

var messagesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a single message",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		s := connect()
		defer s.close()

		msg, err := s.client.Messages().GetMessage(s.ctx, id)
		if err != nil {
			fail("Failed to get message", err)
		}

		printMessages([]client.Message{*msg})
	},
}

var messagesSendCmd = &cobra.Command{
	Use:   "send CONTACT_ID...",
	Short: "Send a message to one or more contacts",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		recipients := make([]client.Contact, 0, len(args))
		for _, arg := range args {
			recipients = append(recipients, client.Contact{ID: parseID(arg)})
		}

		s := connect()
		defer s.close()

		if len(recipients) == 1 {
			msg, err := s.client.Messages().SendMessageTo(s.ctx, messageFrom, messageContent, recipients[0].ID)
			if err != nil {
				fail("Failed to send message", err)
			}
			printMessages([]client.Message{*msg})
			return
		}

		sent, err := s.client.Messages().SendMessages(s.ctx, messageFrom, messageContent, recipients)
		if err != nil {
			fail("Failed to send messages", err)
		}

		slog.Info("Sent messages", "count", len(sent))
		printMessages(sent)
	},
}

func init() {
	messagesSendCmd.Flags().StringVar(&messageFrom, "from", "", "sender name")
	messagesSendCmd.Flags().StringVar(&messageContent, "content", "", "message text")
	_ = messagesSendCmd.MarkFlagRequired("from")
	_ = messagesSendCmd.MarkFlagRequired("content")

	messagesCmd.AddCommand(messagesListCmd, messagesGetCmd, messagesSendCmd)
	rootCmd.AddCommand(messagesCmd)
}

