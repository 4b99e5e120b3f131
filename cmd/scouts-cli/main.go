package main

import (
	"fmt"
	"os"

	"hsportal-backend/cmd/scouts-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("SCOUTS_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the scouts service in the environment variable SCOUTS_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl
	cmd.AccessToken = os.Getenv("SCOUTS_ACCESS_TOKEN")

	cmd.Execute()
}
