package cmd

import (
	"fmt"
	"os"

	"hsportal-backend/services/scouts"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Prints the recruiting calendar state, program coverage and recent staff changes.",
	Run: func(cmd *cobra.Command, args []string) {
		var report scouts.StatusReport
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&report).
			Get("/api/scouts/status")
		expectOK(res, err)

		cal := report.RecruitingCalendar
		fmt.Printf("Season %s | %s (%s)\n", cal.Season, cal.CurrentPeriod, cal.ActivityLevel)
		fmt.Printf("Scrape multiplier: %gx | Next: %s\n\n", cal.ScrapeMultiplier, cal.NextEvent)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Programs", "Verified Today", "Verified This Week", "Needs Verification"})
		t.AppendRow(table.Row{
			report.ProgramStats.Total,
			report.ProgramStats.VerifiedToday,
			report.ProgramStats.VerifiedThisWeek,
			report.ProgramStats.NeedsVerification,
		})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if len(report.RecentStaffChanges) == 0 {
			return
		}

		changes := table.NewWriter()
		changes.SetOutputMirror(os.Stdout)
		changes.AppendHeader(table.Row{"Coach", "Change", "Announced"})
		for _, change := range report.RecentStaffChanges {
			changes.AppendRow(table.Row{change.CoachName, change.ChangeType, change.AnnouncedDate})
		}
		changes.SetStyle(table.StyleRounded)
		changes.Render()
	},
}
