package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/config"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'audit' requires a subcommand (messages)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var auditMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List recent audit messages",
	Long: `List recent audit messages stored in audit_database_url, newest first.

Example:
  wardenctl audit messages --msgid admin-delete --limit 20
  wardenctl audit messages --msgid access -o json`,
	Run: func(cmd *cobra.Command, args []string) {
		msgid, _ := cmd.Flags().GetString("msgid")
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		if err := listMessages(os.Stdout, msgid, limit, output); err != nil {
			fail("list audit messages", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditMessagesCmd)
	auditMessagesCmd.Flags().String("msgid", "", "Message id to list")
	auditMessagesCmd.Flags().Int("limit", 50, "Maximum number of messages")
	auditMessagesCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	_ = auditMessagesCmd.MarkFlagRequired("msgid")
}

func listMessages(w io.Writer, msgid string, limit int, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	store, err := audit.NewStore(cfg.AuditDatabaseURL)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("audit_database_url is not configured")
	}
	defer func() { _ = store.Close() }()

	messages, err := store.Messages(msgid, limit)
	if err != nil {
		return err
	}
	return writeMessages(w, messages, output)
}

func writeMessages(w io.Writer, messages []audit.Message, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if messages == nil {
			messages = []audit.Message{}
		}
		return enc.Encode(messages)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "TIMESTAMP\tSEVERITY\tMESSAGE")
		for _, m := range messages {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", m.Timestamp.UTC().Format(time.RFC3339), m.Severity, m.Message)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
