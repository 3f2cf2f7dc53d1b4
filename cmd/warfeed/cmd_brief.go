package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/warfeed/internal/briefing"
)

func briefCmd() *cobra.Command {
	var (
		top    int
		asJSON bool
		prompt bool
	)

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Generate a short situation report with Claude",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			warID, lang, err := target()
			if err != nil {
				return err
			}
			if top <= 0 {
				top = cfg.API.TopPlanets
			}

			in, err := briefing.Gather(ctx, newClient(logger), names, warID, lang, top)
			if err != nil {
				return fmt.Errorf("brief: %w", err)
			}

			if prompt {
				text, _ := briefing.BuildPrompt(in, cfg.Claude.NewsBudget)
				fmt.Print(text)
				return nil
			}

			if cfg.Claude.APIKey == "" {
				return fmt.Errorf("brief: no Claude API key configured; set ANTHROPIC_API_KEY")
			}

			b := briefing.NewBriefer(cfg.Claude.APIKey, cfg.Claude.Model, cfg.Claude.NewsBudget, logger)
			report, err := b.Brief(ctx, in)
			if err != nil {
				return fmt.Errorf("brief: %w", err)
			}

			if asJSON {
				return printJSON(os.Stdout, report)
			}
			_, _ = titleColor.Printf("War %d briefing", report.WarID)
			fmt.Printf(" (%s, %d news items)\n\n", report.Model, report.NewsIncluded)
			fmt.Println(report.Text)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "planets to include (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "print the prompt instead of calling Claude")
	return cmd
}
