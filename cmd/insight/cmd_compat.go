package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompatCmd(a *app) *cobra.Command {
	var flags struct {
		a, b string
	}
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Compatibility report for two people",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pa, err := parsePerson(flags.a)
			if err != nil {
				return err
			}
			pb, err := parsePerson(flags.b)
			if err != nil {
				return err
			}
			report, err := a.insights.Compare(pa, pb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.json {
				return a.printJSON(out, report)
			}
			fmt.Fprintf(out, "Overall:  %.2f %s\n", report.OverallScore, report.Label)
			fmt.Fprintf(out, "MBTI:     %.2f\n", report.MBTIScore)
			fmt.Fprintf(out, "Element:  %s, %s (%d)\n", report.Element.Relationship, report.Element.Title, report.Element.Score)
			for _, d := range report.Dimensions {
				fmt.Fprintf(out, "  %-12s %s (%d)\n", d.Label, d.Key, d.Score)
			}
			fmt.Fprintf(out, "Function: %s/%s %s (%d)\n", report.Function.FunctionA, report.Function.FunctionB, report.Function.Match, report.Function.Score)
			fmt.Fprintf(out, "Strengths:\n  %s\n", strings.Join(report.Strengths, "\n  "))
			fmt.Fprintf(out, "Challenges:\n  %s\n", strings.Join(report.Challenges, "\n  "))
			fmt.Fprintf(out, "Try: %s\n", strings.Join(report.Activities, ", "))
			fmt.Fprintf(out, "Tip: %s\n", report.CommunicationTip)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.a, "a", "", "First person: TYPE:DATE or TYPE:ELEMENT:POLARITY (required)")
	f.StringVar(&flags.b, "b", "", "Second person: TYPE:DATE or TYPE:ELEMENT:POLARITY (required)")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}
