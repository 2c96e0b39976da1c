package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	groupsCmd := &cobra.Command{Use: "groups", Short: "Group operations"}

	var title, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title required")
			}
			payload := map[string]any{"title": title}
			if description != "" {
				payload["description"] = description
			}
			return do(newClient().R().SetBody(payload).Post("/api/groups"))
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Group title (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Group description")
	groupsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Get("/api/groups"))
		},
	}
	groupsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Get a group by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Get("/api/groups/" + args[0]))
		},
	}
	groupsCmd.AddCommand(getCmd)

	var invitee string
	inviteCmd := &cobra.Command{
		Use:   "invite GROUP_ID",
		Short: "Add a user to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if invitee == "" {
				return fmt.Errorf("--username required")
			}
			return do(newClient().R().
				SetBody(map[string]string{"username": invitee}).
				Put("/api/groups/" + args[0] + "/members"))
		},
	}
	inviteCmd.Flags().StringVarP(&invitee, "username", "u", "", "Username to invite (required)")
	groupsCmd.AddCommand(inviteCmd)

	leaveCmd := &cobra.Command{
		Use:   "leave GROUP_ID",
		Short: "Leave a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Delete("/api/groups/" + args[0] + "/members"))
		},
	}
	groupsCmd.AddCommand(leaveCmd)

	eventsCmd := &cobra.Command{
		Use:   "events GROUP_ID",
		Short: "List a group's events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Get("/api/groups/" + args[0] + "/events"))
		},
	}
	groupsCmd.AddCommand(eventsCmd)

	rootCmd.AddCommand(groupsCmd)
}
