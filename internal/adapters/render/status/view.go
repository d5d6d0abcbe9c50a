package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jsr4564/WepaAPP/internal/application"
	"github.com/jsr4564/WepaAPP/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now         time.Time
	LastChecked time.Time
	StaleAfter  time.Duration
}

func renderView(statuses []application.ComponentStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Printer Supply Status"),
		s.header.Render(headerLine(statuses, opts, s)),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No components configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := labelWidth(statuses)
	for _, status := range statuses {
		lines = append(lines, componentLine(status, opts, width, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(statuses []application.ComponentStatus, opts RenderOptions, s styles) string {
	header := fmt.Sprintf("components: %d, last checked: %s", len(statuses), formatChecked(opts.LastChecked, opts.Now))
	if isStale(opts) {
		header += " " + s.warning.Render("[stale]")
	}
	return header
}

func isStale(opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.LastChecked.IsZero() || opts.StaleAfter <= 0 {
		return false
	}
	return opts.Now.Sub(opts.LastChecked) > opts.StaleAfter
}

func labelWidth(statuses []application.ComponentStatus) int {
	width := 0
	for _, status := range statuses {
		if n := len(status.Component.Label); n > width {
			width = n
		}
	}
	return width
}

func componentLine(status application.ComponentStatus, opts RenderOptions, width int, s styles) string {
	label := s.label.Render(fmt.Sprintf("%-*s", width, status.Component.Label))
	parts := []string{label, "  "}

	if status.Reading != nil && status.Reading.Kind == domain.ReadingLevel && status.Reading.Known {
		parts = append(parts,
			renderLevelBar(status.Reading.Percent, 24, s),
			" ",
			fmt.Sprintf("%3d%%", status.Reading.Percent),
			"  ",
		)
	}

	parts = append(parts, conditionBadge(status.Condition, s))

	if !status.Since.IsZero() {
		parts = append(parts, " ", s.detail.Render(fmt.Sprintf("(since %s)", formatSince(status.Since, opts.Now))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func conditionBadge(condition domain.Condition, s styles) string {
	switch condition {
	case domain.ConditionNormal:
		return s.normal.Render("normal")
	case domain.ConditionLow:
		return s.low.Render("low")
	case domain.ConditionEmpty:
		return s.critical.Render("EMPTY")
	default:
		return s.unknown.Render("unknown")
	}
}

func renderLevelBar(percent, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := float64(clampPercent(percent)) / 100.0
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatChecked(checked, now time.Time) string {
	if checked.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return checked.Format("2006-01-02 15:04")
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := checked.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return checked.Format("15:04")
	}

	return checked.Format("15:04 on 02 Jan")
}

func formatSince(since, now time.Time) string {
	if now.IsZero() || since.After(now) {
		return since.Format("2006-01-02 15:04")
	}

	elapsed := now.Sub(since)
	if elapsed < time.Hour {
		minutes := int(elapsed.Minutes())
		if minutes < 1 {
			return "just now"
		}
		return fmt.Sprintf("%dm ago", minutes)
	}
	if elapsed < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}

	days := int(elapsed.Hours() / 24)
	return fmt.Sprintf("%dd ago (%s)", days, since.Format("02 Jan"))
}
