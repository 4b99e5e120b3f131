package cmd

import (
	"fmt"

	"hsportal-backend/lib/scrapers/staffpage"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <url>",
	Short: "Checks whether a url looks like a coaching staff page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var validation staffpage.Validation
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{"url": args[0]}).
			SetResult(&validation).
			Post("/api/scouts/validate-url")
		expectOK(res, err)

		if validation.Valid {
			fmt.Printf("valid (status %d)\n", validation.Status)
		} else {
			fmt.Println("invalid")
		}
		if validation.Title != "" {
			fmt.Println("title:", validation.Title)
		}
		fmt.Println("coach content:", validation.HasCoachContent)
		if validation.Error != "" {
			fmt.Println("error:", validation.Error)
		}
	},
}
