package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soaringjerry/evoa/internal/logging"
	"github.com/soaringjerry/evoa/internal/models"
)

const maxPitchSeconds = 90

type uploadFlags struct {
	title, startup, stage, category, place, description string
	duration                                            float64
}

func newUploadCmd(a *app) *cobra.Command {
	var f uploadFlags
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a pitch video and add it to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentUser()
			if err != nil {
				return err
			}
			if u.Role != models.RoleFounder {
				return fmt.Errorf("only founder profiles can upload pitches")
			}
			stage, err := models.ParseStage(f.stage)
			if err != nil {
				return err
			}
			if f.duration < 0 || f.duration > maxPitchSeconds {
				return fmt.Errorf("pitch videos must be at most %d seconds", maxPitchSeconds)
			}
			startup := strings.TrimSpace(f.startup)
			if fp, ok := u.Profile.(models.FounderProfile); ok && startup == "" {
				startup = fp.StartupName
			}
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			c := a.client()
			ticket, err := c.UploadURL(cmd.Context(), f.duration)
			if err != nil {
				return fmt.Errorf("request upload url: %w", err)
			}
			logging.Debug("upload url issued", "video_id", ticket.VideoID)
			if err := c.UploadVideo(cmd.Context(), ticket.UploadURL, filepath.Base(args[0]), file); err != nil {
				return err
			}
			p := models.Pitch{
				ID:           fmt.Sprintf("upload-%d", a.now().UnixMilli()),
				Title:        strings.TrimSpace(f.title),
				Startup:      startup,
				Founder:      u.Name,
				Stage:        stage,
				Category:     strings.TrimSpace(f.category),
				Place:        strings.TrimSpace(f.place),
				CloudflareID: ticket.VideoID,
				VideoStatus:  models.VideoReady,
				Duration:     f.duration,
				Description:  strings.TrimSpace(f.description),
			}
			if err := s.AddPitch(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s as %s\n", p.ID, ticket.VideoID)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "pitch title")
	fl.StringVar(&f.startup, "startup", "", "startup name (defaults to the profile's)")
	fl.StringVar(&f.stage, "stage", "", "Idea, MVP, Early Revenue, Growth or Scaling")
	fl.StringVar(&f.category, "category", "", "category, e.g. Fintech")
	fl.StringVar(&f.place, "place", "", "location")
	fl.StringVar(&f.description, "description", "", "short description")
	fl.Float64Var(&f.duration, "duration", 0, "video length in seconds")
	for _, name := range []string{"title", "stage", "category"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
