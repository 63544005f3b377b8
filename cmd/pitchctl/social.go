package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newLikeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "like <pitchId>",
		Short: "Like or unlike a pitch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentUser()
			if err != nil {
				return err
			}
			liked, p, err := s.LikePitch(u.ID, args[0])
			if err != nil {
				return err
			}
			state := "unliked"
			if liked {
				state = "liked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d likes)\n", state, p.Startup, p.Likes)
			return nil
		},
	}
}

func newLikedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "liked",
		Short: "List pitches the current profile liked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentUser()
			if err != nil {
				return err
			}
			list, err := s.LikedPitches(u.ID)
			if err != nil {
				return err
			}
			printPitches(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func newCommentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "comment", Short: "Read or write comments on a pitch"}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <pitchId> <text>",
		Short: "Append a comment as the current profile",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentUser()
			if err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return fmt.Errorf("comment text required")
			}
			c, err := s.AddComment(args[0], u.ID, u.Name, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %s added\n", c.ID)
			return nil
		},
	}, &cobra.Command{
		Use:   "list <pitchId>",
		Short: "List comments in posting order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			comments, err := s.GetComments(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range comments {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", time.UnixMilli(c.Timestamp).UTC().Format(time.RFC3339), c.UserName, c.Text)
			}
			return tw.Flush()
		},
	})
	return cmd
}
