package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMeetCmd(a *app) *cobra.Command {
	var date, clock, notes string
	cmd := &cobra.Command{
		Use:   "meet <pitchId>",
		Short: "Request a meeting with a pitch's founder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentReviewer("meet")
			if err != nil {
				return err
			}
			p, err := s.GetPitch(args[0])
			if err != nil {
				return err
			}
			m, err := s.AddMeeting(u.ID, *p, date, clock, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Meeting scheduled with %s for %s at %s\n", m.Startup, m.Date, m.Time)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "meeting date, YYYY-MM-DD")
	cmd.Flags().StringVar(&clock, "time", "", "meeting time, HH:MM (24h)")
	cmd.Flags().StringVar(&notes, "notes", "", "optional note for the founder")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newMeetingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "meetings",
		Short: "List meetings the current profile requested",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentUser()
			if err != nil {
				return err
			}
			list, err := s.GetMeetings(u.ID)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.Date, m.Time, m.PitchID, m.Startup, m.Notes)
			}
			return tw.Flush()
		},
	}
}
