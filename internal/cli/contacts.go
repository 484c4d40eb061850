package cli

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	client "github.com/devexp/devexp-go-client"
)

var (
	pageNumber  int
	pageSize    int
	contactName string
	contactTel  string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of contacts",
	Run: func(cmd *cobra.Command, args []string) {
		s := connect()
		defer s.close()

		page, err := s.client.Contacts().ListContacts(s.ctx, pageNumber, pageSize)
		if err != nil {
			fail("Failed to list contacts", err)
		}

		printContacts(page.Items)
		slog.Debug("Listed contacts", "page", page.CurrentPage, "page_size", page.PageSize)
	},
}

var contactsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a single contact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		s := connect()
		defer s.close()

		contact, err := s.client.Contacts().GetContact(s.ctx, id)
		if err != nil {
			fail("Failed to get contact", err)
		}

		printContacts([]client.Contact{*contact})
	},
}

var contactsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a contact",
	Run: func(cmd *cobra.Command, args []string) {
		s := connect()
		defer s.close()

		contact, err := s.client.Contacts().AddContact(s.ctx, client.CreateContactRequest{
			Name:  contactName,
			Phone: contactTel,
		})
		if err != nil {
			fail("Failed to add contact", err)
		}

		printContacts([]client.Contact{*contact})
	},
}

var contactsImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Create contacts from a JSON array of {name, phone} objects",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			slog.Error("Failed to read contacts file", "error", err)
			os.Exit(1)
		}

		var reqs []client.CreateContactRequest
		if err := json.Unmarshal(data, &reqs); err != nil {
			slog.Error("Failed to parse contacts file", "error", err)
			os.Exit(1)
		}

		s := connect()
		defer s.close()

		contacts, err := s.client.Contacts().AddContacts(s.ctx, reqs)
		if err != nil {
			fail("Failed to import contacts", err)
		}

		slog.Info("Imported contacts", "count", len(contacts))
		printContacts(contacts)
	},
}

var contactsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change the name and phone of a contact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		s := connect()
		defer s.close()

		contact, err := s.client.Contacts().UpdateContact(s.ctx, client.Contact{
			ID:    id,
			Name:  contactName,
			Phone: contactTel,
		})
		if err != nil {
			fail("Failed to update contact", err)
		}

		printContacts([]client.Contact{*contact})
	},
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete one or more contacts",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ids := make([]uuid.UUID, 0, len(args))
		for _, arg := range args {
			ids = append(ids, parseID(arg))
		}

		s := connect()
		defer s.close()

		var err error
		if len(ids) == 1 {
			err = s.client.Contacts().DeleteContact(s.ctx, ids[0])
		} else {
			err = s.client.Contacts().DeleteContacts(s.ctx, ids)
		}
		if err != nil {
			fail("Failed to delete contacts", err)
		}

		slog.Info("Deleted contacts", "count", len(ids))
	},
}

func init() {
	contactsListCmd.Flags().IntVar(&pageNumber, "page", 1, "page number, starting at 1")
	contactsListCmd.Flags().IntVar(&pageSize, "size", 0, "page size (0 uses the configured default)")

	for _, cmd := range []*cobra.Command{contactsAddCmd, contactsUpdateCmd} {
		cmd.Flags().StringVar(&contactName, "name", "", "contact name")
		cmd.Flags().StringVar(&contactTel, "phone", "", "phone number in E.164 format")
		_ = cmd.MarkFlagRequired("name")
		_ = cmd.MarkFlagRequired("phone")
	}

	contactsCmd.AddCommand(contactsListCmd, contactsGetCmd, contactsAddCmd,
		contactsImportCmd, contactsUpdateCmd, contactsDeleteCmd)
	rootCmd.AddCommand(contactsCmd)
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		setupLogging("info")
		slog.Error("Invalid id", "id", s, "error", err)
		os.Exit(1)
	}
	return id
}
