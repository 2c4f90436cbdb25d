package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/content"
	"saju-mbti/internal/engine"
	"saju-mbti/internal/service"
)

// version se completa al compilar con -ldflags.
var version = "dev"

type rootFlags struct {
	verbose  bool
	provider string
	json     bool
}

// app agrupa lo que necesitan los subcomandos; se arma en PersistentPreRunE.
type app struct {
	logger   *zap.Logger
	engine   *engine.Engine
	insights *service.InsightService
	json     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	root := &cobra.Command{
		Use:           "insight",
		Short:         "Day pillars, daily messages and compatibility from MBTI type and birth date",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init(flags)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log provider fallbacks to stderr")
	pf.StringVar(&flags.provider, "provider", "builtin", "Pillar provider: builtin or lunar")
	pf.BoolVar(&flags.json, "json", false, "Print JSON instead of text")

	root.AddCommand(newPillarCmd(a))
	root.AddCommand(newCompatCmd(a))
	root.AddCommand(newDailyCmd(a))
	root.AddCommand(newCalendarCmd(a))
	return root
}

func (a *app) init(flags *rootFlags) error {
	logger := zap.NewNop()
	if flags.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = dev
	}

	var provider bazi.Provider
	switch flags.provider {
	case "builtin":
	case "lunar":
		provider = bazi.NewLunarProvider()
	default:
		return fmt.Errorf("unknown provider %q (want builtin or lunar)", flags.provider)
	}

	tables, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	a.logger = logger
	a.engine = engine.New(tables, bazi.NewResolver(logger, provider))
	a.insights = service.NewInsightService(logger, a.engine, nil)
	a.json = flags.json
	return nil
}

func (a *app) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
