package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/warfeed/pkg/analysis"
)

func statusCmd() *cobra.Command {
	var (
		top    int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a summary of the current war",
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

			status, err := newClient(logger).Status(ctx, warID, lang)
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			sum := analysis.Summarize(status, top, names)

			if asJSON {
				return printJSON(os.Stdout, sum)
			}

			_, _ = titleColor.Printf("War %d", sum.WarID)
			fmt.Printf("  time %s  impact x%.4f  players %s\n\n",
				warClock(sum.Time), sum.ImpactMultiplier, count(sum.TotalPlayers))

			fmt.Println("Factions:")
			for _, f := range sum.Factions {
				fmt.Printf("  %-12s %d planets\n", orUnknown(f.Name), f.Planets)
			}
			fmt.Println()

			rows := make([][]string, 0, len(sum.TopPlanets))
			for _, p := range sum.TopPlanets {
				rows = append(rows, []string{itoa(p.Index), orUnknown(p.Name), orUnknown(p.OwnerName), count(p.Health), count(p.Players)})
			}
			if err := renderTable(os.Stdout, []string{"#", "Planet", "Owner", "Health", "Players"}, rows); err != nil {
				return err
			}

			if len(sum.Campaigns) > 0 {
				_, _ = infoColor.Printf("\n%d active campaigns\n", len(sum.Campaigns))
			}
			if len(sum.Attacks) > 0 {
				_, _ = infoColor.Printf("%d planet attacks\n", len(sum.Attacks))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "planets to list (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func planetsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "planets",
		Short: "List the most populated planets",
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

			status, err := newClient(logger).Status(ctx, warID, lang)
			if err != nil {
				return fmt.Errorf("planets: %w", err)
			}

			ranked := analysis.TopPlanets(status, top)
			rows := make([][]string, 0, len(ranked))
			for i, r := range ranked {
				owner, _ := names.FactionName(r.Planet.Owner)
				rows = append(rows, []string{
					itoa(int64(i + 1)),
					orUnknown(r.Planet.PlanetName),
					orUnknown(owner),
					fmt.Sprintf("%.1f", r.Planet.RegenPerSecond),
					count(r.Players),
				})
			}
			if len(rows) == 0 {
				fmt.Println("No planets reported.")
				return nil
			}
			return renderTable(os.Stdout, []string{"Rank", "Planet", "Owner", "Regen/s", "Players"}, rows)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "planets to list (default from config)")
	return cmd
}

func factionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factions",
		Short: "Show how many planets each faction holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			warID, lang, err := target()
			if err != nil {
				return err
			}

			status, err := newClient(logger).Status(ctx, warID, lang)
			if err != nil {
				return fmt.Errorf("factions: %w", err)
			}

			dist := analysis.FactionDistribution(status)
			factions := analysis.ReconstructFactions(status, names)
			rows := make([][]string, 0, len(factions))
			for _, f := range factions {
				rows = append(rows, []string{itoa(f.ID), orUnknown(f.Name), itoa(int64(dist[f.ID]))})
			}
			return renderTable(os.Stdout, []string{"ID", "Faction", "Planets"}, rows)
		},
	}
}
