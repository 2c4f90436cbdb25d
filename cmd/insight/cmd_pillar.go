package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPillarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pillar DATE",
		Short: "Show the day and year pillar for a YYYY-MM-DD date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.insights.Pillars(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.json {
				return a.printJSON(out, info)
			}
			fmt.Fprintf(out, "Date:     %s\n", info.Date)
			fmt.Fprintf(out, "Day:      %s\n", describePillar(info.Day))
			fmt.Fprintf(out, "Year:     %s%s (%s)\n", info.Year.Stem, info.Year.Branch, info.Year.Animal)
			fmt.Fprintf(out, "Provider: %s\n", info.Provider)
			return nil
		},
	}
}
