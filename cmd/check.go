package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan content and themes and print the section tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		snap, err := site.Build(ctx, siteOptions(), logger)
		if err != nil {
			return errors.Wrap(err, "check failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "themes: %s\n", strings.Join(snap.Themes.Names(), ", "))
		if locales := snap.Catalogs.Locales(); len(locales) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "locales: %s\n", strings.Join(locales, ", "))
		}
		printTree(cmd.OutOrStdout(), snap.Tree)
		return nil
	},
}

func printTree(w io.Writer, tree *content.ScanResult) {
	_ = tree.Walk(func(s *content.Section) error {
		depth := len(tree.Chain(s)) - 1
		var flags []string
		if s.HasPassword() {
			flags = append(flags, "password")
		} else if s.Protected {
			flags = append(flags, "protected")
		}
		if s.Hidden {
			flags = append(flags, "hidden")
		}
		line := fmt.Sprintf("%s%s  %q  theme=%s items=%d", strings.Repeat("  ", depth), s.Path, s.Title(), s.Style.Theme, len(s.Config.Items))
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, ",") + "]"
		}
		fmt.Fprintln(w, line)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
