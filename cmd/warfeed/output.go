package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgYellow)
)

// renderTable writes rows under header as an aligned table.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	return table.Render()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func count(n int64) string {
	return humanize.Comma(n)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// orUnknown renders a missing reference name.
func orUnknown(name string) string {
	if name == "" {
		return "?"
	}
	return name
}

// warClock renders a war time in seconds as days/hours/minutes.
func warClock(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	days := int64(d / (24 * time.Hour))
	rest := d % (24 * time.Hour)
	return fmt.Sprintf("%dd %dh %dm", days, int64(rest/time.Hour), int64(rest%time.Hour/time.Minute))
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
