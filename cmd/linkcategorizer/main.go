package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"linkcategorizer/internal/categorizer"
	"linkcategorizer/internal/config"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg config.Config
	log *logrus.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configDir string

	root := &cobra.Command{
		Use:   "linkcategorizer",
		Short: "Categorize hyperlinks by URL structure and link text",
		Long: `linkcategorizer assigns links (url, anchor text, title) to categories such as
jobs, social media, pricing or email, and drops tracking and script links.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.log = newLogger(cfg, cmd.ErrOrStderr())
			a.log.WithFields(logrus.Fields{
				"log_level":  cfg.LogLevel,
				"workers":    cfg.Workers,
				"cache_size": cfg.CacheSize,
			}).Debug("Configuration loaded successfully")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory containing config.yaml")

	root.AddCommand(newCategorizeCmd(a))
	root.AddCommand(newBotCmd(a))
	root.AddCommand(newRulesCmd(a))
	return root
}

// newLogger writes JSON logs to w. Stdout is reserved for command output.
func newLogger(cfg config.Config, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(w)
	log.SetLevel(cfg.Level())
	return log
}

func (a *app) newCategorizer(workers int) (*categorizer.Categorizer, error) {
	c, err := categorizer.New(
		categorizer.WithLogger(a.log),
		categorizer.WithWorkers(workers),
		categorizer.WithCacheSize(a.cfg.CacheSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create categorizer: %w", err)
	}
	return c, nil
}
