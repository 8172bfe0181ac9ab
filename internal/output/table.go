// Package output provides terminal output utilities for cvswitch:
// table rendering for saved versions and the event journal, a spinner for
// the longer copy operations, and human-readable time formatting. Color
// codes are emitted only on a TTY and respect NO_COLOR.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/cvswitch/internal/store"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderVersionTable renders the saved versions with their index records.
// records may be missing entries for versions saved by older builds; those
// rows show dashes. active marks the currently live version.
func RenderVersionTable(versions []string, records map[string]*store.SnapshotRecord, active string) string {
	if len(versions) == 0 {
		return "No saved versions.\n"
	}

	sorted := make([]string, len(versions))
	copy(sorted, versions)
	sort.Strings(sorted)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-16s %-13s %-18s %-9s %s\n",
		"Version", "Saved", "Reason", "Libs", "Metadata"))
	sb.WriteString(strings.Repeat("─", 68))
	sb.WriteString("\n")

	for _, v := range sorted {
		saved, reason, libs, meta := "—", "—", "—", "—"
		if rec, ok := records[v]; ok && rec != nil {
			saved = formatRelativeTime(rec.CreatedAt)
			reason = rec.Reason
			libs = fmt.Sprintf("%d", rec.LibFiles)
			if rec.Degraded {
				meta = colorize(colorYellow, "degraded")
			} else {
				meta = colorize(colorGreen, "complete")
			}
		}

		name := truncate(v, 16)
		if v == active {
			name = name + " *"
		}

		sb.WriteString(fmt.Sprintf("%-16s %-13s %-18s %-9s %s\n",
			name, saved, truncate(reason, 18), libs, meta))
	}

	if active != "" {
		sb.WriteString(colorize(colorGray, "* currently active\n"))
	}

	return sb.String()
}

// RenderEventTable renders journal entries, newest first.
func RenderEventTable(events []*store.Event) string {
	if len(events) == 0 {
		return "No recorded events.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-14s %-16s %-14s %-14s %s\n",
		"When", "Action", "From", "To", "Detail"))
	sb.WriteString(strings.Repeat("─", 76))
	sb.WriteString("\n")

	for _, ev := range events {
		from := ev.FromVersion
		if from == "" {
			from = "—"
		}
		to := ev.ToVersion
		if to == "" {
			to = "—"
		}
		sb.WriteString(fmt.Sprintf("%-14s %-16s %-14s %-14s %s\n",
			formatRelativeTime(ev.Timestamp),
			ev.Action,
			truncate(from, 14),
			truncate(to, 14),
			truncate(ev.Detail, 28)))
	}

	return sb.String()
}

// formatRelativeTime formats a timestamp relative to now ("3d ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// truncate shortens s to max characters with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
