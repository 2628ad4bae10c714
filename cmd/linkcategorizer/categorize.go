package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"linkcategorizer/internal/categorizer"
	"linkcategorizer/internal/linkio"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func newCategorizeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categorize [file]",
		Short: "Categorize a JSON array of links",
		Long: `Reads a JSON array of {"url", "text", "title"} records from file, or from
stdin when no file (or "-") is given, and prints each surviving link with its
category. Ignored links are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatTable)
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			workers, err := intFlagOr(cmd.Flags(), "workers", a.cfg.Workers)
			if err != nil {
				return err
			}
			c, err := a.newCategorizer(workers)
			if err != nil {
				return err
			}

			return runCategorize(a, c, in, cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or table")
	cmd.Flags().Int("workers", 1, "goroutines used to categorize (defaults to WORKERS)")
	return cmd
}

func runCategorize(a *app, c categorizer.LinkCategorizer, in io.Reader, out io.Writer, format string) error {
	links, err := linkio.Decode(in)
	if err != nil {
		return err
	}

	categorized := c.CategorizeAll(links)
	a.log.WithFields(logrus.Fields{
		"links":       len(links),
		"categorized": len(categorized),
	}).Info("Categorized links")

	if format == formatTable {
		linkio.WriteTable(out, categorized)
		return nil
	}
	return linkio.WriteJSON(out, categorized)
}

// intFlagOr returns the flag value when it was set on the command line and
// fallback otherwise.
func intFlagOr(flags *pflag.FlagSet, name string, fallback int) (int, error) {
	if !flags.Changed(name) {
		return fallback, nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", name, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("--%s must be at least 1, got %d", name, v)
	}
	return v, nil
}
