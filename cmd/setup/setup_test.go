package setup

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/sumwatshade/surfgrid/cmd/settings"
)

func defaults(t *testing.T) *settings.Config {
	t.Helper()
	v := viper.New()
	settings.Configure(v)
	c, err := settings.FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}
	return c
}

func TestNewModelPrefills(t *testing.T) {
	m := NewModel(defaults(t))
	if m.nameStr != "Coolum Beach" || m.idStr != "6833" || m.latStr != "-26.53" {
		t.Errorf("location fields = %q %q %q", m.nameStr, m.idStr, m.latStr)
	}
	if m.startStr != "6" || m.endStr != "18" || m.bandStartStr != "225" {
		t.Errorf("window fields = %q %q %q", m.startStr, m.endStr, m.bandStartStr)
	}
}

func TestConfigAppliesAnswers(t *testing.T) {
	base := defaults(t)
	m := NewModel(base)
	m.nameStr = " Noosa "
	m.idStr = "6840"
	m.sourceStr = settings.SourceFixture
	m.pathStr = "testdata/day.json"
	m.startStr = "5"
	m.endStr = "19"
	m.bandStartStr = "180"
	m.targetStr = settings.TargetTerminal
	m.windTail = true

	c, err := m.Config()
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if c.Location.Name != "Noosa" || c.Location.ID != 6840 {
		t.Errorf("location = %+v", c.Location)
	}
	if c.Window.HourStart != 5 || c.Window.HourEnd != 19 {
		t.Errorf("window = %+v", c.Window)
	}
	if c.Location.WindDirRangeStart != 180 || c.Source.FixturePath != "testdata/day.json" {
		t.Errorf("config = %+v", c)
	}
	if c.Display.Target != settings.TargetTerminal || !c.Grid.ShowWindTail {
		t.Errorf("display = %+v, wind tail %v", c.Display, c.Grid.ShowWindTail)
	}
	if base.Location.Name != "Coolum Beach" {
		t.Error("Config() modified the base config")
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Model)
	}{
		{"bad id", func(m *Model) { m.idStr = "coolum" }},
		{"latitude out of range", func(m *Model) { m.latStr = "-91" }},
		{"hour past midnight", func(m *Model) { m.endStr = "25" }},
		{"reversed window", func(m *Model) { m.startStr, m.endStr = "18", "6" }},
		{"band not a number", func(m *Model) { m.bandEndStr = "west" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(defaults(t))
			tt.mutate(m)
			if _, err := m.Config(); err == nil {
				t.Error("Config() succeeded")
			}
		})
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		in    string
		valid bool
	}{
		{"hour", validateHour, "0", true},
		{"hour 24", validateHour, "24", true},
		{"negative hour", validateHour, "-1", false},
		{"fractional hour", validateHour, "6.5", false},
		{"id", validateID, " 6833 ", true},
		{"negative id", validateID, "-2", false},
		{"degrees", validateRange(0, 360), "337.5", true},
		{"too many degrees", validateRange(0, 360), "361", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(tt.in); (err == nil) != tt.valid {
				t.Errorf("validate(%q) error = %v, want valid %v", tt.in, err, tt.valid)
			}
		})
	}
}

func TestConfirmation(t *testing.T) {
	m := NewModel(defaults(t))
	m.completed = true
	if !strings.Contains(View(m), "Review: Coolum Beach (6833)") {
		t.Errorf("view = %q", View(m))
	}

	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if !m.Done() {
		t.Error("'y' did not confirm")
	}
}

func TestConfirmationRejectsInvalidAnswers(t *testing.T) {
	m := NewModel(defaults(t))
	m.completed = true
	m.endStr = "4"
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.Done() {
		t.Error("confirmed an invalid window")
	}
	if !strings.Contains(View(m), "Invalid answers") {
		t.Errorf("view = %q", View(m))
	}
}

func TestDiscardStartsOver(t *testing.T) {
	m := NewModel(defaults(t))
	m.completed = true
	m.nameStr = "Noosa"
	m, _ = UpdateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.completed || m.nameStr != "Coolum Beach" {
		t.Errorf("after 'n': completed %v, name %q", m.completed, m.nameStr)
	}
}
