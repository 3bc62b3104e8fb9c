package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/florianjoerg/vvmd/internal/sim"
	"github.com/florianjoerg/vvmd/internal/thermostat"
	"github.com/guptarohit/asciigraph"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a simulation interactively, stepping a block of
// integration steps per frame and charting the group temperatures.
type Model struct {
	integ        *sim.Integrator
	name         string
	stepsPerTick int
	running      bool
	selected     thermostat.Group
	histories    [thermostat.NumGroups][]float64
	keHistory    []float64
	err          error
}

// NewModel wraps an initialized integrator for live viewing.
func NewModel(integ *sim.Integrator, name string, stepsPerTick int) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		integ:        integ,
		name:         name,
		stepsPerTick: stepsPerTick,
		running:      true,
		keHistory:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			m.selected = (m.selected + 1) % thermostat.NumGroups
		}
	case TickMsg:
		if m.running && m.err == nil {
			if err := m.integ.Step(m.stepsPerTick); err != nil {
				m.err = err
				m.running = false
			} else {
				m.sample()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) sample() {
	temps := m.integ.GroupTemperatures()
	for g := thermostat.Group(0); g < thermostat.NumGroups; g++ {
		m.histories[g] = append(m.histories[g], temps[g])
		if len(m.histories[g]) > historyCapacity {
			m.histories[g] = m.histories[g][1:]
		}
	}
	m.keHistory = append(m.keHistory, m.integ.ComputeKineticEnergy())
	if len(m.keHistory) > historyCapacity {
		m.keHistory = m.keHistory[1:]
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = "ERROR: " + m.err.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	hist := m.histories[m.selected]
	if len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(8), asciigraph.Width(60),
			asciigraph.Caption(m.selected.String()+" temperature (K)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	temps := m.integ.GroupTemperatures()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4f ps", m.integ.Time())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.integ.StepCount())) + "\n")
	for g := thermostat.Group(0); g < thermostat.NumGroups; g++ {
		label := "T " + g.String()
		if g == m.selected {
			label = "> " + label
		}
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%.2f K", temps[g])) + "\n")
	}
	if n := len(m.keHistory); n > 0 {
		s.WriteString(labelStyle.Render("KE") + valueStyle.Render(fmt.Sprintf("%.3f kJ/mol", m.keHistory[n-1])) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause  Tab:Group  Q:Quit"))
	return paneStyle.Render(s.String())
}
