package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soaringjerry/evoa/internal/logging"
	"github.com/soaringjerry/evoa/internal/models"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var refresh, asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <pitchId>",
		Short: "Show the AI brief for a pitch, fetching it once per profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentReviewer("analyze")
			if err != nil {
				return err
			}
			p, err := s.GetPitch(args[0])
			if err != nil {
				return err
			}
			if refresh {
				if err := s.ClearCachedAnalysis(p.ID, u.ID); err != nil {
					return err
				}
			}
			an, err := s.GetCachedAnalysis(p.ID, u.ID)
			if err != nil {
				return err
			}
			if an == nil {
				logging.Debug("analysis cache miss", "pitch_id", p.ID)
				an, err = a.client().Analyze(cmd.Context(), p, u.ID)
				if err != nil {
					return fmt.Errorf("analyze %s: %w", p.ID, err)
				}
				if err := s.SetCachedAnalysis(p.ID, u.ID, *an); err != nil {
					return err
				}
			}
			if asJSON {
				return printJSON(cmd, an)
			}
			printAnalysis(cmd.OutOrStdout(), p, an)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "drop the cached brief and fetch a new one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw record")
	return cmd
}

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <pitchId> <question>",
		Short: "Ask a free-text question about a pitch",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, u, err := a.currentReviewer("ask")
			if err != nil {
				return err
			}
			p, err := s.GetPitch(args[0])
			if err != nil {
				return err
			}
			q := strings.TrimSpace(strings.Join(args[1:], " "))
			if q == "" {
				return fmt.Errorf("question required")
			}
			ans, err := a.client().Ask(cmd.Context(), p, u.ID, q)
			if err != nil {
				return fmt.Errorf("ask %s: %w", p.ID, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ans.Answer)
			return nil
		},
	}
}

func printAnalysis(w io.Writer, p *models.Pitch, an *models.Analysis) {
	fmt.Fprintf(w, "%s (%s, %s)\n\n", p.Startup, p.Stage, p.Category)
	fmt.Fprintf(w, "Problem:   %s\nSolution:  %s\nCustomer:  %s\nStage:     %s\nAsk:       %s\n\n",
		an.Brief.Problem, an.Brief.Solution, an.Brief.TargetCustomer, an.Brief.CurrentStage, an.Brief.Ask)
	rs := an.ReadinessSignals
	fmt.Fprintf(w, "Clarity %s [%s]  Traction %s [%s]  Market %s [%s]  Founder %s [%s]\n\n",
		rs.Clarity, models.SignalTone(string(rs.Clarity)),
		rs.Traction, models.SignalTone(string(rs.Traction)),
		rs.Market, models.SignalTone(string(rs.Market)),
		rs.FounderSignal, models.SignalTone(string(rs.FounderSignal)))
	printList(w, "Questions to ask", an.QuestionsToAsk)
	printList(w, "Risks and gaps", an.RisksAndGaps)
	fmt.Fprintf(w, "Similar:   %s\nDifferent: %s\n\n", an.ComparableContext.SimilarStartups, an.ComparableContext.Differentiation)
	fmt.Fprintf(w, "Verdict: %s [%s]\n%s\n", an.Recommendation.Verdict,
		models.SignalTone(string(an.Recommendation.Verdict)), an.Recommendation.Reasoning)
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
	fmt.Fprintln(w)
}
