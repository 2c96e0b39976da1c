package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "Account and session operations"}

	var username, password string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password required")
			}
			return do(newClient().R().
				SetBody(map[string]string{"username": username, "password": password}).
				Post("/api/users"))
		},
	}
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	usersCmd.AddCommand(registerCmd)

	var loginUser, loginPass string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginUser == "" || loginPass == "" {
				return fmt.Errorf("--username and --password required")
			}
			return do(newClient().R().
				SetBody(map[string]string{"username": loginUser, "password": loginPass}).
				Post("/api/login"))
		},
	}
	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVarP(&loginPass, "password", "p", "", "Password (required)")
	usersCmd.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Post("/api/logout"))
		},
	}
	usersCmd.AddCommand(logoutCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Get("/api/users"))
		},
	}
	usersCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get USERNAME",
		Short: "Get an account by username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Get("/api/users/" + args[0]))
		},
	}
	usersCmd.AddCommand(getCmd)

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Get("/api/session"))
		},
	}
	usersCmd.AddCommand(whoamiCmd)

	rootCmd.AddCommand(usersCmd)
}
