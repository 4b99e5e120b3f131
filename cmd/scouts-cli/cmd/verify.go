package cmd

import (
	"fmt"
	"os"

	"hsportal-backend/services/scouts"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var verifyTier int64
var verifyLimit int64
var verifyProgram int64

func init() {
	verifyCmd.Flags().Int64VarP(&verifyTier, "tier", "t", 1, "priority tier to verify")
	verifyCmd.Flags().Int64VarP(&verifyLimit, "limit", "l", 10, "maximum programs to verify")
	verifyCmd.Flags().Int64VarP(&verifyProgram, "program", "p", 0, "verify a single program by id, ignores tier and limit")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Runs a staff verification batch (or a single program) right now.",
	Run: func(cmd *cobra.Command, args []string) {
		if verifyProgram != 0 {
			var changes scouts.ProgramChanges
			res, err := client.R().
				SetContext(cmd.Context()).
				SetBody(map[string]int64{"program_id": verifyProgram}).
				SetResult(&changes).
				Post("/api/scouts/verify")
			expectOK(res, err)

			fmt.Printf("%s: +%d -%d ~%d\n", changes.Program, changes.Added, changes.Removed, changes.Updated)
			return
		}

		var result scouts.BatchResult
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]int64{"tier": verifyTier, "limit": verifyLimit}).
			SetResult(&result).
			Post("/api/scouts/verify")
		expectOK(res, err)

		if result.Message != "" {
			fmt.Println(result.Message)
			return
		}

		fmt.Printf("Verified %d programs (%s, threshold %dh)\n",
			result.Verified, result.Period.Name, result.AdjustedThresholdHours)

		if len(result.Changes) > 0 {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Program", "Added", "Removed", "Updated"})
			for _, c := range result.Changes {
				t.AppendRow(table.Row{c.Program, c.Added, c.Removed, c.Updated})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
		}

		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
	},
}
