package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adminwarden/warden/pkg/admin"
)

// adminDetailCmd represents the admin detail command
var adminDetailCmd = &cobra.Command{
	Use:   "detail <admin_id>",
	Short: "Show an administrator and its groups",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		err := withApp(cmd, func(ctx context.Context, a *app) error {
			detail, err := a.service.Detail(ctx, args[0])
			if err != nil {
				return err
			}
			return writeDetail(os.Stdout, detail, output)
		})
		if err != nil {
			fail("show admin "+args[0], err)
		}
	},
}

func init() {
	adminCmd.AddCommand(adminDetailCmd)
	adminDetailCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

type detailJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Nickname  string   `json:"nickname"`
	Email     string   `json:"email"`
	Introduce string   `json:"introduce"`
	Avatar    string   `json:"avatar,omitempty"`
	Status    string   `json:"status"`
	IsRoot    bool     `json:"is_root"`
	Groups    []string `json:"groups"`
}

func writeDetail(w io.Writer, d *admin.Detail, output string) error {
	groups := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		groups = append(groups, g.ID)
	}

	switch output {
	case "json":
		out := detailJSON{
			ID:        d.Admin.ID,
			Name:      d.Admin.Name,
			Nickname:  d.Admin.Nickname,
			Email:     d.Admin.Email,
			Introduce: d.Admin.Introduce,
			Status:    d.Admin.Status.String(),
			IsRoot:    d.Admin.IsRoot,
			Groups:    groups,
		}
		if d.Admin.Avatar != nil {
			out.Avatar = *d.Admin.Avatar
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "text":
		_, err := fmt.Fprintf(w, "%-10s %s\n%-10s %s\n%-10s %s\n%-10s %s\n%-10s %v\n%-10s %s\n",
			"ID", d.Admin.ID,
			"NAME", d.Admin.Name,
			"EMAIL", d.Admin.Email,
			"STATUS", d.Admin.Status,
			"ROOT", d.Admin.IsRoot,
			"GROUPS", strings.Join(groups, ", "),
		)
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
