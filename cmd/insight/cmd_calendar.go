package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"saju-mbti/internal/engine"
)

const maxCalendarMonths = 24

func newCalendarCmd(a *app) *cobra.Command {
	var flags struct {
		typeCode string
		birth    string
		month    string
		months   int
	}
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Monthly energy calendar for a type and birth date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := time.Parse("2006-01", flags.month)
			if err != nil {
				return fmt.Errorf("month %q: want YYYY-MM", flags.month)
			}
			if flags.months < 1 || flags.months > maxCalendarMonths {
				return fmt.Errorf("months must be between 1 and %d", maxCalendarMonths)
			}
			chart, err := a.chartFor(flags.typeCode, flags.birth)
			if err != nil {
				return err
			}
			months, err := a.calendars(chart, start, flags.months)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.json {
				return a.printJSON(out, months)
			}
			for i, m := range months {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printMonth(cmd, m)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.typeCode, "type", "", "MBTI type (required)")
	f.StringVar(&flags.birth, "birth", "", "Birth date YYYY-MM-DD (required)")
	f.StringVar(&flags.month, "month", "", "First month YYYY-MM (required)")
	f.IntVar(&flags.months, "months", 1, "Number of consecutive months")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("birth")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

// calendars arma n meses consecutivos en paralelo, conservando el orden.
func (a *app) calendars(chart engine.UserChart, start time.Time, n int) ([]engine.Month, error) {
	out := make([]engine.Month, n)
	var g errgroup.Group
	g.SetLimit(4)
	for i := 0; i < n; i++ {
		t := start.AddDate(0, i, 0)
		g.Go(func() error {
			m, err := a.engine.MonthCalendar(chart, t.Year(), int(t.Month()))
			if err != nil {
				return fmt.Errorf("%04d-%02d: %w", t.Year(), int(t.Month()), err)
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func printMonth(cmd *cobra.Command, m engine.Month) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d\n", time.Month(m.Month), m.Year)
	for _, d := range m.Days {
		fmt.Fprintf(out, "  %s %s %-16s %d %-11s %s\n",
			d.Date, d.Pillar.Label(), d.Relationship, d.EnergyLevel, d.EnergyBand, d.Animal)
	}
}
