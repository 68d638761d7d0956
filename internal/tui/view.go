package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/models"
	"github.com/napolitain/homebound/internal/snapshot"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	cellStyle     = lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
	cursorStyle   = cellStyle.Reverse(true)
	buildingStyle = cellStyle.Foreground(lipgloss.Color("229"))
	buildStyle    = cellStyle.Foreground(lipgloss.Color("214"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var abbreviations = map[models.BuildingKind]string{
	models.Headquarters:        "HQ",
	models.SolarPanels:         "SOL",
	models.Storage:             "STO",
	models.DrillingStation:     "DRL",
	models.ElectrolysisStation: "ELC",
	models.Greenhouse:          "GRN",
	models.Furnace:             "FUR",
	models.School:              "SCH",
	models.Factory:             "FAC",
	models.ResearchLabs:        "LAB",
}

// View renders the grid, the colony panel and the selected building
func (m Model) View() string {
	v := m.view
	header := titleStyle.Render(fmt.Sprintf("%s  tick %d  %.1fs", v.Name, v.Tick, v.Elapsed))
	if m.paused {
		header += dimStyle.Render("  [paused]")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.grid()),
		panelStyle.Render(colonyPanel(v)),
		panelStyle.Render(m.selectionPanel()),
	)

	help := dimStyle.Render("arrows move · 1-9 build · u upgrade · c cancel · x destroy · e/E s/S workers · p produce · t/T/P train · m/n/b manufacture · ⌫ cancel queue · space pause · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.status, help) + "\n"
}

func (m Model) grid() string {
	cells := make(map[colony.Coords]snapshot.BuildingView, len(m.view.Buildings))
	for _, b := range m.view.Buildings {
		cells[colony.Coords{X: b.X, Y: b.Y}] = b
	}

	var rows []string
	for y := range colony.GridSize {
		var row []string
		for x := range colony.GridSize {
			at := colony.Coords{X: x, Y: y}
			label, style := "·", cellStyle
			if b, ok := cells[at]; ok {
				label = fmt.Sprintf("%s%d", abbreviations[b.Kind], b.Level)
				style = buildingStyle
				if b.Constructing {
					label += "+"
					style = buildStyle
				}
			}
			if at == m.cursor {
				style = cursorStyle
			}
			row = append(row, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func colonyPanel(v snapshot.View) string {
	var b strings.Builder
	power := fmt.Sprintf("power %.0f/%.0f", v.Power.Consumed, v.Power.Produced)
	if v.AvailablePower <= 0 {
		power = warnStyle.Render(power)
	}
	b.WriteString(power + "\n")
	for _, rt := range models.AllResourceTypes() {
		capacity := v.MaxStorage[rt]
		if capacity == 0 && v.Stock[rt] == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-11s %7.1f / %.0f\n", rt, v.Stock[rt], capacity)
	}
	wf := v.Workforce
	fmt.Fprintf(&b, "engineers   %d/%d\n", wf.Engineers.Available, wf.Engineers.Total)
	fmt.Fprintf(&b, "scientists  %d/%d\n", wf.Scientists.Available, wf.Scientists.Total)
	fmt.Fprintf(&b, "pilots      %d", wf.Pilots)
	for _, it := range models.AllItemTypes() {
		if n := v.Items[it]; n > 0 {
			fmt.Fprintf(&b, "\n%-11s %d", it, n)
		}
	}
	return b.String()
}

func (m Model) selectionPanel() string {
	for _, b := range m.view.Buildings {
		if b.X == m.cursor.X && b.Y == m.cursor.Y {
			return buildingPanel(b)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "empty %s\n", m.cursor)
	for i, kind := range Buildable() {
		fmt.Fprintf(&b, "%d %s\n", i+1, models.Info(kind).Label)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildingPanel(bv snapshot.BuildingView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d\n", titleStyle.Render(bv.Label), bv.Level, bv.LevelMax)
	if bv.Constructing {
		fmt.Fprintf(&b, "building %.0f/%.0f\n", bv.ConstructionCompleted, bv.ConstructionRequired)
	}
	fmt.Fprintf(&b, "power +%.0f -%.0f\n", bv.PowerProduced, bv.PowerConsumed)
	for _, job := range models.AllJobTypes() {
		fmt.Fprintf(&b, "%-12s E %d/%d  S %d/%d\n", job,
			bv.Assigned.Get(job, models.Engineers), bv.Capacity.Get(job, models.Engineers),
			bv.Assigned.Get(job, models.Scientists), bv.Capacity.Get(job, models.Scientists))
	}
	if bv.Target != "" {
		fmt.Fprintf(&b, "target %s\n", bv.Target)
	}
	if bv.Progress > 0 {
		fmt.Fprintf(&b, "progress %.1f\n", bv.Progress)
	}
	if len(bv.Queue) > 0 {
		fmt.Fprintf(&b, "queue %s\n", strings.Join(bv.Queue, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
