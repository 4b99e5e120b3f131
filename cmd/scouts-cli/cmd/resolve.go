package cmd

import (
	"fmt"
	"os"

	"hsportal-backend/services/scouts"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var resolveProgram int64
var resolveLimit int64

func init() {
	resolveCmd.Flags().Int64VarP(&resolveProgram, "program", "p", 0, "resolve a single program by id")
	resolveCmd.Flags().Int64VarP(&resolveLimit, "limit", "l", 10, "maximum programs to resolve")
	resolveCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Auto-discovers staff page urls for programs that have none.",
	Run: func(cmd *cobra.Command, args []string) {
		if resolveProgram != 0 {
			var result scouts.ResolveResult
			res, err := client.R().
				SetContext(cmd.Context()).
				SetBody(map[string]int64{"program_id": resolveProgram}).
				SetResult(&result).
				Post("/api/scouts/resolve-urls")
			expectOK(res, err)

			printResolveResults([]scouts.ResolveResult{result})
			return
		}

		var body struct {
			Results []scouts.ResolveResult `json:"results"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]int64{"limit": resolveLimit}).
			SetResult(&body).
			Post("/api/scouts/resolve-urls")
		expectOK(res, err)

		printResolveResults(body.Results)
	},
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "Rewrites stored staff urls that still carry a previous season's token.",
	Run: func(cmd *cobra.Command, args []string) {
		var body struct {
			Message string                `json:"message"`
			Updates []scouts.SeasonUpdate `json:"updates"`
		}
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&body).
			Get("/api/scouts/refresh-seasons")
		expectOK(res, err)

		fmt.Println(body.Message)
		for _, u := range body.Updates {
			fmt.Printf("  %s: %s -> %s\n", u.Program, u.OldUrl, u.NewUrl)
		}
	},
}

func printResolveResults(results []scouts.ResolveResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Program", "Staff URL", "Pattern", "Error"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Program, r.Resolved, r.Pattern, r.Error})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
