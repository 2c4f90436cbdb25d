package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newDailyCmd(a *app) *cobra.Command {
	var flags struct {
		typeCode string
		birth    string
		date     string
		timezone string
	}
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily message for a type and birth date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chart, err := a.chartFor(flags.typeCode, flags.birth)
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(flags.timezone)
			if err != nil {
				return fmt.Errorf("timezone %q: %w", flags.timezone, err)
			}
			msg, err := a.insights.DailyForChart(chart, loc, flags.date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.json {
				return a.printJSON(out, msg)
			}
			fmt.Fprintf(out, "%s %s\n", msg.Greeting, msg.Date)
			fmt.Fprintf(out, "Today:    %s\n", describePillar(msg.TodayPillar))
			fmt.Fprintf(out, "Relation: %s (energy %d, luck %d)\n\n", msg.Relationship, msg.EnergyLevel, msg.Luck)
			fmt.Fprintf(out, "%s\n\n", msg.MainMessage)
			fmt.Fprintf(out, "%s\n", msg.TodayEnergy)
			fmt.Fprintf(out, "%s\n\n", msg.Interaction)
			fmt.Fprintf(out, "Best for:      %s\n", strings.Join(msg.BestFor, ", "))
			fmt.Fprintf(out, "Watch out for: %s\n", strings.Join(msg.WatchOutFor, ", "))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.typeCode, "type", "", "MBTI type (required)")
	f.StringVar(&flags.birth, "birth", "", "Birth date YYYY-MM-DD (required)")
	f.StringVar(&flags.date, "date", "", "Day to read, YYYY-MM-DD (default today)")
	f.StringVar(&flags.timezone, "tz", "Local", "Timezone used for today and the greeting")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}
