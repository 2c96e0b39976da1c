package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "hearthctl",
		Short: "CLI client for the hearth backend REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "hearth service base URL")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const sessionCookieName = "hearth_session"

// sessionFile holds the session cookie between invocations so a login in one
// run carries over to the next.
func sessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hearthctl-session"
	}
	return filepath.Join(home, ".hearthctl-session")
}

func newClient() *resty.Client {
	client := resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json")
	if data, err := os.ReadFile(sessionFile()); err == nil {
		if sid := strings.TrimSpace(string(data)); sid != "" {
			client.SetCookie(&http.Cookie{Name: sessionCookieName, Value: sid})
		}
	}
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		for _, c := range resp.Cookies() {
			if c.Name == sessionCookieName {
				_ = os.WriteFile(sessionFile(), []byte(c.Value), 0o600)
			}
		}
		return nil
	})
	return client
}

// do runs the request and prints the response body; non-2xx becomes an error.
func do(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, strings.TrimSpace(string(resp.Body())))
	if resp.IsError() {
		return fmt.Errorf("request failed: %s", resp.Status())
	}
	return nil
}
