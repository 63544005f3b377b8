package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/soaringjerry/evoa/internal/models"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Show or change the local profile"}
	cmd.AddCommand(newProfileShowCmd(a), newProfileSetCmd(a), newProfileClearCmd(a))
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, u, err := a.currentUser()
			if err != nil {
				return err
			}
			return printJSON(cmd, u)
		},
	}
}

func newProfileSetCmd(a *app) *cobra.Command {
	var role, name, email string
	var meta []string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the local profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := models.ParseRole(role)
			if err != nil {
				return err
			}
			fields, err := parseMeta(meta)
			if err != nil {
				return err
			}
			p, err := models.ProfileFromFields(r, fields)
			if err != nil {
				return fmt.Errorf("profile fields for %s: %w", r, err)
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			id := uuid.NewString()
			if prev, err := s.GetUser(); err == nil && prev != nil {
				id = prev.ID
			}
			u := models.NewUser(id, strings.TrimSpace(name), strings.TrimSpace(email), p)
			if err := s.SetUser(u); err != nil {
				return err
			}
			return printJSON(cmd, u)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "founder, investor, incubator or viewer")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "role field as key=value, repeatable")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProfileClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the local profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			return s.ClearUser()
		},
	}
}

func parseMeta(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("meta %q: want key=value", kv)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
