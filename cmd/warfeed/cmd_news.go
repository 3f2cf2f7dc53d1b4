package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/warfeed/pkg/analysis"
)

func newsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the latest entries of the war news feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			warID, lang, err := target()
			if err != nil {
				return err
			}

			items, err := newClient(logger).NewsFeed(ctx, warID, lang)
			if err != nil {
				return fmt.Errorf("news: %w", err)
			}

			latest := analysis.LatestNews(items, limit)
			if len(latest) == 0 {
				fmt.Println("No news.")
				return nil
			}
			for _, it := range latest {
				_, _ = titleColor.Printf("[%d] ", it.ID)
				fmt.Printf("published %s (type %d)\n", warClock(it.Published), it.Type)
				fmt.Printf("    %s\n", truncate(it.Message, 200))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "max entries, 0 for all")
	return cmd
}
