package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"linkcategorizer/internal/categorizer"
	"linkcategorizer/internal/domain"
)

// ruleTables lists the tables in the order the categorizer consults them.
var ruleTables = []string{"ignore", "domain", "path", "text"}

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "rules [ignore|domain|path|text]",
		Short:     "Print the categorization rules in evaluation order",
		Long:      `Prints every rule table, or just the named one. Within a table the first matching rule wins.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: ruleTables,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := ruleTables
			if len(args) == 1 {
				tables = args
			}
			a.log.WithField("tables", tables).Debug("Printing rule tables")
			return writeRules(cmd.OutOrStdout(), tables)
		},
	}
}

func writeRules(w io.Writer, tables []string) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Table", "#", "Category", "Pattern"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, name := range tables {
		var rules []categorizer.Rule
		switch name {
		case "ignore":
			for _, p := range categorizer.IgnorePatterns() {
				rules = append(rules, categorizer.Rule{Category: domain.CategoryIgnored, Pattern: p})
			}
		case "domain":
			rules = categorizer.DomainRules()
		case "path":
			rules = categorizer.PathRules()
		case "text":
			rules = categorizer.TextRules()
		default:
			return fmt.Errorf("unknown rule table %q", name)
		}

		for i, r := range rules {
			table.Append([]string{
				name,
				strconv.Itoa(i + 1),
				r.Category,
				strings.TrimPrefix(r.Pattern.String(), "(?i)"),
			})
		}
	}
	table.Render()
	return nil
}
