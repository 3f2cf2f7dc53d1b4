package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/warfeed/pkg/analysis"
)

func sectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "List the sectors of a war and the planets they contain",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			warID, err := resolveWarID()
			if err != nil {
				return err
			}

			info, err := newClient(logger).WarInfo(ctx, warID)
			if err != nil {
				return fmt.Errorf("sectors: %w", err)
			}

			sectors := analysis.ReconstructSectors(info, names)
			rows := make([][]string, 0, len(sectors))
			for _, s := range sectors {
				planetNames := make([]string, 0, len(s.Planets))
				for _, p := range s.Planets {
					name, _ := names.PlanetName(p)
					planetNames = append(planetNames, orUnknown(name))
				}
				rows = append(rows, []string{itoa(s.ID), orUnknown(s.Name), truncate(strings.Join(planetNames, ", "), 80)})
			}
			return renderTable(os.Stdout, []string{"ID", "Sector", "Planets"}, rows)
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the static layout of a war",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			warID, err := resolveWarID()
			if err != nil {
				return err
			}

			info, err := newClient(logger).WarInfo(ctx, warID)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}

			_, _ = titleColor.Printf("War %d\n", info.WarID)
			if info.StartDate > 0 {
				start := time.Unix(info.StartDate, 0)
				fmt.Printf("Started:        %s (%s)\n", start.UTC().Format(time.RFC3339), humanize.Time(start))
			}
			if info.EndDate > 0 {
				fmt.Printf("Ends:           %s\n", time.Unix(info.EndDate, 0).UTC().Format(time.RFC3339))
			}
			fmt.Printf("Client version: %s\n", orUnknown(info.MinimumClientVersion))
			fmt.Printf("Planets:        %d\n", len(info.PlanetInfos))
			fmt.Printf("Sectors:        %d\n", len(analysis.ReconstructSectors(info, names)))

			if len(info.HomeWorlds) > 0 {
				fmt.Println("\nHome worlds:")
				for _, hw := range info.HomeWorlds {
					race, _ := names.FactionName(hw.Race)
					planetNames := make([]string, 0, len(hw.PlanetIndices))
					for _, p := range hw.PlanetIndices {
						name, _ := names.PlanetName(p)
						planetNames = append(planetNames, orUnknown(name))
					}
					fmt.Printf("  %-12s %s\n", orUnknown(race), strings.Join(planetNames, ", "))
				}
			}
			return nil
		},
	}
}

func timeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Show the war clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			warID, err := resolveWarID()
			if err != nil {
				return err
			}

			wt, err := newClient(logger).WarTime(ctx, warID)
			if err != nil {
				return fmt.Errorf("time: %w", err)
			}

			fmt.Printf("War %d time: %d (%s)\n", warID, wt, warClock(wt))
			return nil
		},
	}
}
