package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the war-status API, reference tables and Claude configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			allOK := true

			warID, err := resolveWarID()
			if err != nil {
				return err
			}

			if _, err := newClient(logger).WarTime(ctx, warID); err != nil {
				_, _ = failColor.Print("War API: FAIL ")
				fmt.Printf("(%v)\n", err)
				allOK = false
			} else {
				_, _ = okColor.Print("War API: OK ")
				fmt.Printf("(%s, war %d)\n", cfg.API.BaseURL, warID)
			}

			store := names
			_, _ = okColor.Print("Reference data: OK ")
			fmt.Printf("(%d planets, %d factions, %d sectors)\n",
				len(store.Planets()), len(store.Factions()), len(store.Sectors()))

			if cfg.Claude.APIKey == "" {
				_, _ = infoColor.Println("Claude API: not configured (brief unavailable)")
			} else {
				_, _ = okColor.Print("Claude API: OK ")
				fmt.Printf("(%s)\n", cfg.Claude.Model)
			}

			if !allOK {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}
}
