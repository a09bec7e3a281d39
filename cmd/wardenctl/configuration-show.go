package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show warden configuration attributes and their sources",
	Long: `Show warden configuration attributes and their sources.

Secrets are masked. Values come from defaults, the config file and the
environment, in that order of precedence (lowest first).

Config file location: /etc/warden/warden.yml (or WARDEN_CONFIG_PATH)

Example:
  wardenctl configuration show
  wardenctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			fail("show configuration", fmt.Errorf("failed to load configuration: %w", err))
		}
		if err := writeConfiguration(os.Stdout, cfg, output); err != nil {
			fail("show configuration", err)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func writeConfiguration(w io.Writer, cfg *config.WardenConfig, output string) error {
	switch output {
	case "json":
		out, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "text":
		_, err := fmt.Fprint(w, cfg.FormatText())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			_, err = fmt.Fprintf(w, "\nWarning: %v\n", err)
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
