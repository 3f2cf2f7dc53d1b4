package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve ids against the reference tables",
		Long:  "Resolve a planet, faction or sector id to its name. Without an id, list the whole table.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "planet [id]",
			Short: "Look up a planet",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store := names
				if len(args) == 0 {
					rows := make([][]string, 0)
					for _, p := range store.Planets() {
						rows = append(rows, []string{itoa(p.ID), p.Name})
					}
					return renderTable(os.Stdout, []string{"ID", "Planet"}, rows)
				}
				return lookupOne("planet", args[0], store.PlanetName)
			},
		},
		&cobra.Command{
			Use:   "faction [id]",
			Short: "Look up a faction",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store := names
				if len(args) == 0 {
					rows := make([][]string, 0)
					for _, f := range store.Factions() {
						rows = append(rows, []string{itoa(f.ID), f.Name})
					}
					return renderTable(os.Stdout, []string{"ID", "Faction"}, rows)
				}
				return lookupOne("faction", args[0], store.FactionName)
			},
		},
		&cobra.Command{
			Use:   "sector [id]",
			Short: "Look up a sector and its reference planets",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store := names
				if len(args) == 0 {
					rows := make([][]string, 0)
					for _, s := range store.Sectors() {
						rows = append(rows, []string{itoa(s.ID), s.Name, itoa(int64(len(s.Planets)))})
					}
					return renderTable(os.Stdout, []string{"ID", "Sector", "Planets"}, rows)
				}

				sectorID, err := parseLookupID(args[0])
				if err != nil {
					return err
				}
				sector, ok := store.Sector(sectorID)
				if !ok {
					return fmt.Errorf("no sector with id %d", sectorID)
				}
				planetNames := make([]string, 0, len(sector.Planets))
				for _, p := range sector.Planets {
					name, _ := store.PlanetName(p)
					planetNames = append(planetNames, orUnknown(name))
				}
				fmt.Printf("%d\t%s\t%s\n", sector.ID, sector.Name, strings.Join(planetNames, ", "))
				return nil
			},
		},
	)
	return cmd
}

func lookupOne(kind, arg string, resolve func(int64) (string, bool)) error {
	n, err := parseLookupID(arg)
	if err != nil {
		return err
	}
	name, ok := resolve(n)
	if !ok {
		return fmt.Errorf("no %s with id %d", kind, n)
	}
	fmt.Printf("%d\t%s\n", n, name)
	return nil
}

func parseLookupID(arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return n, nil
}
