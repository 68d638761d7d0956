// Package tui renders a live colony in the terminal and maps keys to colony actions.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/models"
	"github.com/napolitain/homebound/internal/scenario"
	"github.com/napolitain/homebound/internal/service"
	"github.com/napolitain/homebound/internal/snapshot"
)

var (
	drillTargets   = []models.ResourceType{models.Water, models.IronOre, models.CopperOre, models.UraniumOre}
	furnaceTargets = []models.ResourceType{models.Iron, models.Copper, models.Uranium}
)

type tickMsg time.Time

// Model is the bubbletea model of a running colony
type Model struct {
	session *service.Session
	driver  *service.Driver
	cursor  colony.Coords
	paused  bool
	status  string
	view    snapshot.View
}

// New creates a model with the cursor on the headquarters
func New(session *service.Session, driver *service.Driver) Model {
	m := Model{session: session, driver: driver, cursor: colony.HeadquartersCoords}
	m.syncSelection()
	m.view = session.View()
	return m
}

// Init starts the tick loop
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.driver.DT()*float64(time.Second)), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles ticks and key presses
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			m.view = m.driver.Step()
		}
		return m, m.tick()
	case tea.KeyMsg:
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
		m.view = m.session.View()
	}
	return m, nil
}

func (m *Model) handleKey(key string) bool {
	switch key {
	case "q", "ctrl+c":
		return true
	case " ":
		m.paused = !m.paused
		m.status = "running"
		if m.paused {
			m.status = "paused"
		}
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		kinds := Buildable()
		idx := int(key[0] - '1')
		if idx < len(kinds) {
			m.act(scenario.Step{Action: scenario.AddBuilding, Kind: kinds[idx]})
		}
	case "u":
		m.act(scenario.Step{Action: scenario.Upgrade})
	case "c":
		m.act(scenario.Step{Action: scenario.CancelUpgrade})
	case "x":
		m.act(scenario.Step{Action: scenario.Destroy})
	case "e", "E", "s", "S":
		m.assign(key)
	case "p":
		m.cycleProduction()
	case "t":
		m.act(scenario.Step{Action: scenario.Train, Worker: models.Engineers})
	case "T":
		m.act(scenario.Step{Action: scenario.Train, Worker: models.Scientists})
	case "P":
		m.act(scenario.Step{Action: scenario.Train, Worker: models.Pilots})
	case "m":
		m.act(scenario.Step{Action: scenario.Manufacture, Item: models.HullModule})
	case "n":
		m.act(scenario.Step{Action: scenario.Manufacture, Item: models.EngineModule})
	case "b":
		m.act(scenario.Step{Action: scenario.Manufacture, Item: models.CargoModule})
	case "backspace":
		m.cancelQueueHead()
	}
	return false
}

// Buildable returns the kinds bound to the number keys, in order
func Buildable() []models.BuildingKind {
	var kinds []models.BuildingKind
	for _, k := range models.AllBuildingKinds() {
		if k != models.Headquarters {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (m *Model) move(dx, dy int) {
	next := colony.Coords{X: m.cursor.X + dx, Y: m.cursor.Y + dy}
	if !next.Valid() {
		return
	}
	m.cursor = next
	m.syncSelection()
}

func (m *Model) syncSelection() {
	at := m.cursor
	m.session.Do(func(c *colony.Colony) bool { return c.Select(at) })
}

// act applies step at the cursor and records the outcome in the status line
func (m *Model) act(step scenario.Step) {
	step.X, step.Y = m.cursor.X, m.cursor.Y
	applied := m.session.Do(func(c *colony.Colony) bool { return scenario.Apply(c, step) })
	detail := string(step.Action)
	switch {
	case step.Kind != "":
		detail += " " + string(step.Kind)
	case step.Worker != "":
		detail += " " + string(step.Worker)
	case step.Item != "":
		detail += " " + string(step.Item)
	case step.Resource != "":
		detail += " " + string(step.Resource)
	}
	if applied {
		m.status = fmt.Sprintf("%s at %s", detail, m.cursor)
	} else {
		m.status = fmt.Sprintf("%s refused at %s", detail, m.cursor)
	}
}

// assign moves one worker into the job the building currently runs
func (m *Model) assign(key string) {
	wt := models.Engineers
	if key == "s" || key == "S" {
		wt = models.Scientists
	}
	job := models.Production
	at := m.cursor
	m.session.Do(func(c *colony.Colony) bool {
		if b := c.Building(at); b != nil && b.IsConstructing() {
			job = models.Construction
		}
		return true
	})
	m.act(scenario.Step{Action: scenario.Assign, Job: job, Worker: wt, Remove: key == "E" || key == "S"})
}

func (m *Model) cycleProduction() {
	at := m.cursor
	var (
		action  scenario.Action
		targets []models.ResourceType
		current models.ResourceType
	)
	m.session.Do(func(c *colony.Colony) bool {
		switch b := c.Building(at).(type) {
		case *colony.DrillingStation:
			action, targets, current = scenario.Produce, drillTargets, b.Target()
		case *colony.Furnace:
			action, targets, current = scenario.SwitchProduction, furnaceTargets, b.Target()
		}
		return true
	})
	if action == "" {
		m.status = fmt.Sprintf("nothing to produce at %s", at)
		return
	}
	m.act(scenario.Step{Action: action, Resource: nextTarget(targets, current)})
}

func (m *Model) cancelQueueHead() {
	at := m.cursor
	var kind models.BuildingKind
	m.session.Do(func(c *colony.Colony) bool {
		if b := c.Building(at); b != nil {
			kind = b.Kind()
		}
		return true
	})
	switch kind {
	case models.School:
		m.act(scenario.Step{Action: scenario.CancelTraining})
	case models.Factory:
		m.act(scenario.Step{Action: scenario.CancelItem})
	default:
		m.status = fmt.Sprintf("no queue at %s", at)
	}
}

func nextTarget(targets []models.ResourceType, current models.ResourceType) models.ResourceType {
	for i, rt := range targets {
		if rt == current {
			return targets[(i+1)%len(targets)]
		}
	}
	return targets[0]
}
