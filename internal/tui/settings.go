package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomo/internal/store"
)

// SettingsStore is the settings table.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

var settingLabels = map[string]string{
	"work_minutes":  "Work (min)",
	"break_minutes": "Break (min)",
	"daily_goal":    "Daily goal (work intervals)",
}

var settingOrder = []string{"work_minutes", "break_minutes", "daily_goal"}

type settingsForm struct {
	form   *huh.Form
	values map[string]*string
}

func newSettingsForm(s SettingsStore) settingsForm {
	sf := settingsForm{values: make(map[string]*string, len(settingOrder))}

	var fields []huh.Field
	for _, k := range settingOrder {
		v := getVal(s, k, "")
		sf.values[k] = &v
		validate := positiveInt
		if k == "daily_goal" {
			validate = nonNegativeInt
		}
		fields = append(fields, huh.NewInput().Title(settingLabels[k]).Value(sf.values[k]).Validate(validate))
	}

	sf.form = huh.NewForm(huh.NewGroup(fields...).Title("Pomodoro")).
		WithShowHelp(true).
		WithShowErrors(true)
	return sf
}

func (sf settingsForm) save(s SettingsStore) error {
	for _, k := range settingOrder {
		if err := s.SetSetting(k, *sf.values[k]); err != nil {
			return fmt.Errorf("save setting %q: %w", k, err)
		}
	}
	return nil
}

// EditSettings shows the settings form and stores the result.
func EditSettings(s SettingsStore) error {
	sf := newSettingsForm(s)
	if err := sf.form.Run(); err != nil {
		return err
	}
	return sf.save(s)
}

func RenderSettings(settings []store.Setting) string {
	title := titleStyle.Render("Settings")

	rows := []string{title, ""}
	for _, setting := range settings {
		name, ok := settingLabels[setting.Key]
		if !ok {
			name = setting.Key
		}
		label := lipgloss.NewStyle().Width(30).Render(name)
		value := highlightStyle.Render(setting.Value)
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func getVal(s SettingsStore, k, fallback string) string {
	v, err := s.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number above zero")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number, 0 for no goal")
	}
	return nil
}
