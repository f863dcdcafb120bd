package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomo/internal/clock"
	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/timer"
)

// CountdownDisplay runs the full-screen countdown for one interval.
type CountdownDisplay struct {
	Clock clock.Clock
	// Progress is today's goal progress before this interval, shown as dots.
	Progress *stats.Progress
	Options  []tea.ProgramOption
}

func (d *CountdownDisplay) Countdown(ctx context.Context, total time.Duration, label string) error {
	m := newCountdownModel(label, total, d.Clock.Now)
	m.progress = d.Progress

	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, d.Options...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("%w: %w", timer.ErrAborted, err)
	}
	if fm, ok := final.(countdownModel); !ok || !fm.done {
		return timer.ErrAborted
	}
	return nil
}

type countdownModel struct {
	width  int
	height int

	label     string
	total     time.Duration
	end       time.Time
	remaining time.Duration
	now       func() time.Time

	progress *stats.Progress
	help     help.Model

	done    bool
	aborted bool
}

func newCountdownModel(label string, total time.Duration, now func() time.Time) countdownModel {
	return countdownModel{
		label:     label,
		total:     total,
		end:       now().Add(total),
		remaining: total,
		now:       now,
		help:      help.New(),
	}
}

func (m countdownModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m countdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.remaining = m.end.Sub(m.now())
		if m.remaining <= 0 {
			m.remaining = 0
			m.done = true
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	return m, nil
}

func (m countdownModel) View() string {
	w := max(m.width-4, 40)

	style := accentStyle
	if m.label == "Break" {
		style = successStyle
	}

	title := titleStyle.Render("Pomodoro Timer")
	timeDisplay := style.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(timer.FormatRemaining(m.remaining))
	phaseLabel := style.Bold(true).Render(strings.ToUpper(m.label))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		m.renderElapsed(),
		m.renderProgress(),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.View(keys)),
	)
}

func (m countdownModel) renderElapsed() string {
	elapsed := m.total - m.remaining
	return mutedStyle.Render(fmt.Sprintf("%s of %s", formatMinutes(int(elapsed/time.Minute)), formatMinutes(int(m.total/time.Minute))))
}

// renderProgress draws one dot per Work interval of today's goal.
func (m countdownModel) renderProgress() string {
	if m.progress == nil || m.progress.Goal <= 0 {
		return ""
	}
	return renderGoalDots(m.progress.Completed, m.progress.Goal, m.label == "Work")
}

func renderGoalDots(completed, goal int, inProgress bool) string {
	var parts []string
	for i := 0; i < max(goal, completed); i++ {
		if i < completed {
			parts = append(parts, successStyle.Render("●"))
		} else if i == completed && inProgress {
			parts = append(parts, accentStyle.Render("◐"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", completed, goal))
	return progress + counter
}
