// Package tui implements the interactive build browser behind `gbp
// browse`: a machines list that drills down into the build list of the
// selected machine. All data flows through the API client via tea
// commands; the UI itself never blocks on the network.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gbpcli/src/gbp"
)

// fetchTimeout bounds every API round trip issued by the browser.
const fetchTimeout = 30 * time.Second

type state int

const (
	stateMachines state = iota
	stateBuilds
)

type machinesLoadedMsg []gbp.Machine

type buildsLoadedMsg struct {
	machine string
	builds  []gbp.Build
}

type errMsg struct{ err error }

// Model is the bubbletea model for the build browser.
type Model struct {
	client *gbp.Client
	styles *StyleConfig

	list    list.Model
	state   state
	machine string

	// machineItems caches the machines list so going back is instant.
	machineItems []list.Item

	width  int
	height int
	err    error
}

// NewModel builds the initial browser model around the given client.
func NewModel(client *gbp.Client) Model {
	styles := DefaultStyles()

	l := list.New([]list.Item{}, NewDelegate(), 0, 0)
	l.Title = "Machines"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.Styles.Title = styles.TitleStyle()

	return Model{
		client: client,
		styles: styles,
		list:   l,
		state:  stateMachines,
	}
}

// Start runs the browser until the user quits.
func Start(client *gbp.Client) error {
	p := tea.NewProgram(NewModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init kicks off the initial machines fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchMachines
}

func (m Model) fetchMachines() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	machines, err := m.client.Machines(ctx)
	if err != nil {
		return errMsg{err}
	}
	return machinesLoadedMsg(machines)
}

func (m Model) fetchBuilds(machine string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		builds, err := m.client.Builds(ctx, machine)
		if err != nil {
			return errMsg{err}
		}
		return buildsLoadedMsg{machine: machine, builds: builds}
	}
}

// Update handles messages: fetched data, resize, and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case machinesLoadedMsg:
		items := make([]list.Item, len(msg))
		for i, machine := range msg {
			items[i] = machineItem{machine: machine}
		}
		m.machineItems = items
		m.state = stateMachines
		m.list.Title = "Machines"
		m.err = nil
		return m, m.list.SetItems(items)

	case buildsLoadedMsg:
		// The client hands builds back oldest first; the browser shows
		// the newest at the top.
		items := make([]list.Item, len(msg.builds))
		for i := range msg.builds {
			items[i] = buildItem{build: msg.builds[len(msg.builds)-1-i]}
		}
		m.state = stateBuilds
		m.machine = msg.machine
		m.list.Title = "Builds: " + msg.machine
		m.list.ResetSelected()
		m.err = nil
		return m, m.list.SetItems(items)

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.state == stateMachines {
				if item, ok := m.list.SelectedItem().(machineItem); ok {
					return m, m.fetchBuilds(item.machine.Name)
				}
			}
			return m, nil

		case "esc":
			if m.state == stateBuilds {
				m.state = stateMachines
				m.machine = ""
				m.list.Title = "Machines"
				m.list.ResetSelected()
				return m, m.list.SetItems(m.machineItems)
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list panel with a help line underneath.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	panel := m.styles.PanelStyle().
		Width(m.width - 2).
		Render(m.list.View())

	help := "enter: open  esc: back  q: quit"
	if m.state == stateMachines {
		help = "enter: builds  q: quit"
	}
	footer := m.styles.HelpStyle().Render(help)

	if m.err != nil {
		footer = m.styles.HelpStyle().Render(fmt.Sprintf("error: %v", m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panel, footer)
}
