// Package setup is the first-run wizard that writes a surfgrid config file.
package setup

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sumwatshade/surfgrid/cmd/settings"
)

// SourceOptions lists the forecast sources the wizard offers.
var SourceOptions = []string{settings.SourceWillyWeather, settings.SourceFixture, settings.SourceERA5}

// TargetOptions lists the display targets the wizard offers.
var TargetOptions = []string{settings.TargetPNG, settings.TargetTerminal, settings.TargetEPaper}

// Model using huh form
type Model struct {
	base *settings.Config
	form *huh.Form

	nameStr      string
	idStr        string
	latStr       string
	lonStr       string
	sourceStr    string
	apiKeyStr    string
	pathStr      string
	startStr     string
	endStr       string
	bandStartStr string
	bandEndStr   string
	bufferStr    string
	targetStr    string
	windTail     bool

	completed bool // form has been completed
	confirmed bool // user confirmed save
	aborted   bool
}

// NewModel prefills the form from base, usually the defaults or the current
// config file.
func NewModel(base *settings.Config) *Model {
	m := &Model{base: base}
	l := base.Location
	m.nameStr = l.Name
	m.idStr = strconv.Itoa(l.ID)
	m.latStr = formatFloat(l.Latitude)
	m.lonStr = formatFloat(l.Longitude)
	m.sourceStr = base.Source.Kind
	m.apiKeyStr = base.Source.APIKey
	switch base.Source.Kind {
	case settings.SourceFixture:
		m.pathStr = base.Source.FixturePath
	case settings.SourceERA5:
		m.pathStr = base.Source.ERA5Path
	}
	m.startStr = strconv.Itoa(base.Window.HourStart)
	m.endStr = strconv.Itoa(base.Window.HourEnd)
	m.bandStartStr = formatFloat(l.WindDirRangeStart)
	m.bandEndStr = formatFloat(l.WindDirRangeEnd)
	m.bufferStr = formatFloat(l.WindDirRangeBuffer)
	m.targetStr = base.Display.Target
	m.windTail = base.Grid.ShowWindTail
	m.buildForm()
	return m
}

func (m *Model) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Spot name").Value(&m.nameStr),
			huh.NewInput().Title("WillyWeather location id").Value(&m.idStr).Validate(validateID),
			huh.NewInput().Title("Latitude").Value(&m.latStr).Validate(validateRange(-90, 90)),
			huh.NewInput().Title("Longitude").Value(&m.lonStr).Validate(validateRange(-180, 180)),
		).Title("Location"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Forecast source").Options(selectOptions(SourceOptions)...).Value(&m.sourceStr),
			huh.NewInput().Title("API key").Description("WillyWeather only").EchoMode(huh.EchoModePassword).Value(&m.apiKeyStr),
			huh.NewInput().Title("Data path").Description("Fixture JSON or ERA5 NetCDF file").Value(&m.pathStr),
		).Title("Source"),
		huh.NewGroup(
			huh.NewInput().Title("First hour").Value(&m.startStr).Validate(validateHour),
			huh.NewInput().Title("Last hour").Value(&m.endStr).Validate(validateHour),
			huh.NewInput().Title("Offshore wind from (°)").Value(&m.bandStartStr).Validate(validateRange(0, 360)),
			huh.NewInput().Title("Offshore wind to (°)").Value(&m.bandEndStr).Validate(validateRange(0, 360)),
			huh.NewInput().Title("Acceptable margin (°)").Value(&m.bufferStr).Validate(validateRange(0, 180)),
		).Title("Window and wind"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Display").Options(selectOptions(TargetOptions)...).Value(&m.targetStr),
			huh.NewConfirm().Title("Draw wind tails?").Value(&m.windTail),
		).Title("Display"),
	).WithShowHelp(false)
}

func selectOptions(vals []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(vals))
	for _, v := range vals {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		m.buildForm()
	}
	var cmd tea.Cmd
	if updated, ucmd := m.form.Update(msg); ucmd != nil {
		cmd = ucmd
		if f, ok := updated.(*huh.Form); ok {
			m.form = f
		}
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.completed = true
	case huh.StateAborted:
		m.aborted = true
	}
	return cmd
}

// Done reports whether the user confirmed the answers.
func (m *Model) Done() bool { return m.completed && m.confirmed }

// Aborted reports whether the user left the form.
func (m *Model) Aborted() bool { return m.aborted }

// Config returns the base config with the answers applied.
func (m *Model) Config() (*settings.Config, error) {
	c := *m.base
	var err error
	if c.Location.ID, err = parseID(m.idStr); err != nil {
		return nil, err
	}
	if c.Location.Latitude, err = parseRange(m.latStr, -90, 90); err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	if c.Location.Longitude, err = parseRange(m.lonStr, -180, 180); err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	if c.Location.WindDirRangeStart, err = parseRange(m.bandStartStr, 0, 360); err != nil {
		return nil, fmt.Errorf("wind band start: %w", err)
	}
	if c.Location.WindDirRangeEnd, err = parseRange(m.bandEndStr, 0, 360); err != nil {
		return nil, fmt.Errorf("wind band end: %w", err)
	}
	if c.Location.WindDirRangeBuffer, err = parseRange(m.bufferStr, 0, 180); err != nil {
		return nil, fmt.Errorf("wind band margin: %w", err)
	}
	if c.Window.HourStart, err = parseHour(m.startStr); err != nil {
		return nil, fmt.Errorf("first hour: %w", err)
	}
	if c.Window.HourEnd, err = parseHour(m.endStr); err != nil {
		return nil, fmt.Errorf("last hour: %w", err)
	}
	if c.Window.HourEnd <= c.Window.HourStart {
		return nil, fmt.Errorf("last hour %d must be after first hour %d", c.Window.HourEnd, c.Window.HourStart)
	}

	c.Location.Name = strings.TrimSpace(m.nameStr)
	c.Source.Kind = m.sourceStr
	c.Source.APIKey = strings.TrimSpace(m.apiKeyStr)
	switch m.sourceStr {
	case settings.SourceFixture:
		c.Source.FixturePath = strings.TrimSpace(m.pathStr)
	case settings.SourceERA5:
		c.Source.ERA5Path = strings.TrimSpace(m.pathStr)
	}
	c.Display.Target = m.targetStr
	c.Grid.ShowWindTail = m.windTail
	return &c, nil
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("location id must be a whole number")
	}
	return id, nil
}

func parseHour(s string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a whole hour: %q", s)
	}
	if h < 0 || h > 24 {
		return 0, fmt.Errorf("hour %d outside 0-24", h)
	}
	return h, nil
}

func parseRange(s string, lo, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f < lo || f > hi {
		return 0, fmt.Errorf("%v outside %v to %v", f, lo, hi)
	}
	return f, nil
}

func validateID(s string) error {
	_, err := parseID(s)
	return err
}

func validateHour(s string) error {
	_, err := parseHour(s)
	return err
}

func validateRange(lo, hi float64) func(string) error {
	return func(s string) error {
		_, err := parseRange(s, lo, hi)
		return err
	}
}
