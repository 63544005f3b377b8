package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/soaringjerry/evoa/internal/middleware"
	"github.com/soaringjerry/evoa/internal/utils"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <export.json>",
		Short: "Import a browser localStorage export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			report, err := s.ImportBrowserExport(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user: %t\npitches: %d\nlike sets: %d\ncomment threads: %d\nanalyses: %d\n",
				report.User, report.Pitches, report.LikeSets, report.CommentThreads, report.Analyses)
			if len(report.Skipped) > 0 {
				fmt.Fprintf(out, "skipped: %s\n", strings.Join(report.Skipped, ", "))
			}
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete everything in the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			if err := s.ResetAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "local store cleared")
			return nil
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	var user, role, secret string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with the server secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				_, u, err := a.currentUser()
				if err != nil {
					return err
				}
				user, role = u.ID, string(u.Role)
			}
			tok, err := middleware.SignToken([]byte(secret), user, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "subject id (defaults to the local profile)")
	cmd.Flags().StringVar(&secret, "secret", utils.SafeEnv("EVOA_TOKEN_SECRET", ""), "shared HS256 secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
