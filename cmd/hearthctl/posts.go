package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	postsCmd := &cobra.Command{Use: "posts", Short: "Post operations"}

	var content, groupID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post in a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if content == "" || groupID == "" {
				return fmt.Errorf("--content and --group required")
			}
			return do(newClient().R().
				SetBody(map[string]string{"content": content, "groupId": groupID}).
				Post("/api/posts"))
		},
	}
	createCmd.Flags().StringVarP(&content, "content", "c", "", "Post content (required)")
	createCmd.Flags().StringVarP(&groupID, "group", "g", "", "Group ID (required)")
	postsCmd.AddCommand(createCmd)

	var author string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, optionally by author",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if author != "" {
				req.SetQueryParam("author", author)
			}
			return do(req.Get("/api/posts"))
		},
	}
	listCmd.Flags().StringVarP(&author, "author", "u", "", "Filter by author username")
	postsCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete POST_ID",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(newClient().R().Delete("/api/posts/" + args[0]))
		},
	}
	postsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(postsCmd)
}
