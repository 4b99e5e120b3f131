package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl string
var AccessToken string

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "scouts-cli",
	Short: "scouts-cli is a CLI interface for the HSPortalOne staff verification service.",
}

func Execute() {
	client = resty.New().SetBaseURL(BaseUrl)
	if AccessToken != "" {
		client.SetAuthToken(AccessToken)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail on transport errors and non-2xx alike, every command wants the
// same handling
func expectOK(res *resty.Response, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if res.IsError() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", res.Status(), res.String())
		os.Exit(1)
	}
}
