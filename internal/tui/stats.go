package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/store"
)

// StatsView is everything the stats panel shows for one user and day.
type StatsView struct {
	Username     string
	Today        store.Date
	WorkMinutes  int
	BreakMinutes int
	// Progress is nil when no daily goal is configured.
	Progress *stats.Progress
	Week     []stats.Day
	Width    int
}

func RenderStats(v StatsView) string {
	w := v.Width - 4
	if w < 60 {
		w = 60
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Today"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s · %s", v.Username, v.Today)),
	)

	rows := []string{
		header,
		"",
		fmt.Sprintf("  %-14s %s", "Work", accentStyle.Render(formatMinutes(v.WorkMinutes))),
		fmt.Sprintf("  %-14s %s", "Break", successStyle.Render(formatMinutes(v.BreakMinutes))),
	}
	if v.Progress != nil {
		rows = append(rows, fmt.Sprintf("  %-14s %s", "Goal", renderGoalDots(v.Progress.Completed, v.Progress.Goal, false)))
		if v.Progress.Reached {
			rows = append(rows, "  "+successStyle.Bold(true).Render("Daily goal reached!"))
		}
	}

	if len(v.Week) > 0 {
		rows = append(rows, "", titleStyle.Render("Last 7 days"), "", renderWeekChart(v.Week, w-4), "", renderWeekLegend(), "", renderWeekTable(v.Week))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderWeekChart(days []stats.Day, width int) string {
	total := 0
	for _, d := range days {
		total += d.WorkMinutes + d.BreakMinutes
	}
	if total == 0 {
		return mutedStyle.Render("  No intervals in the last 7 days")
	}
	if width < 20 {
		width = 20
	}
	chart := barchart.New(width, 12)

	workStyle := lipgloss.NewStyle().Foreground(colorAccent)
	breakStyle := lipgloss.NewStyle().Foreground(colorSuccess)

	var bars []barchart.BarData
	for _, d := range days {
		label := fmt.Sprintf("%02d/%02d", int(d.Date.Month), d.Date.Day)
		values := []barchart.BarValue{
			{Name: "Work", Value: float64(d.WorkMinutes) / 60, Style: workStyle},
			{Name: "Break", Value: float64(d.BreakMinutes) / 60, Style: breakStyle},
		}
		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func renderWeekLegend() string {
	work := lipgloss.NewStyle().Foreground(colorAccent).Render("●")
	brk := lipgloss.NewStyle().Foreground(colorSuccess).Render("●")
	return fmt.Sprintf("  %s Work  %s Break  %s", work, brk, mutedStyle.Render("(hours)"))
}

func renderWeekTable(days []stats.Day) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %10s", "Date", "Work", "Break", "Intervals")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 45)))
	for _, d := range days {
		rows = append(rows, fmt.Sprintf("  %-12s %10s %10s %10d",
			d.Date, formatHours(d.WorkMinutes), formatHours(d.BreakMinutes), d.WorkCount,
		))
	}
	return strings.Join(rows, "\n")
}
