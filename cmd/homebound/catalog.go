package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/homebound/internal/models"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the building and item catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg.Simulation.DataDir)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			printCatalog(catalog)
			return nil
		},
	}
}

func printCatalog(catalog *models.Catalog) {
	titleColor := color.New(color.FgCyan, color.Bold)

	titleColor.Println("🏗️  Buildings")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Building", "Max", "Level", "Cost", "Workload", "Power", "Jobs", "Storage"}),
	)
	for _, kind := range models.AllBuildingKinds() {
		b := catalog.Building(kind)
		if b == nil {
			continue
		}
		name := models.Info(kind).Label
		if !b.Implemented {
			name += " (n/a)"
		}
		// Each row describes a level and what it costs to reach the next one
		for level := 1; level <= b.MaxLevel; level++ {
			lv := b.Levels[level]
			prev := b.Levels[level-1]
			row := []string{
				name,
				fmt.Sprintf("%d", b.MaxLevel),
				fmt.Sprintf("%d", level),
				formatCosts(prev.UpgradeCost),
				fmt.Sprintf("%.0f", prev.UpgradeWorkload),
				fmt.Sprintf("+%.0f/-%.0f", lv.PowerProduced, lv.PowerConsumed),
				fmt.Sprintf("%d/%d", lv.Jobs.Job(models.Construction), lv.Jobs.Job(models.Production)),
				formatCosts(models.Costs(lv.Storage)),
			}
			_ = table.Append(row)
			name = ""
		}
	}
	_ = table.Render()

	fmt.Println()
	titleColor.Println("🚀 Items")
	items := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Item", "Costs", "Workload"}),
	)
	for _, it := range models.AllItemTypes() {
		item := catalog.Item(it)
		if item == nil {
			continue
		}
		_ = items.Append([]string{string(it), formatCosts(item.Costs), fmt.Sprintf("%.0f", item.Workload)})
	}
	_ = items.Render()

	fmt.Println()
	titleColor.Println("🎓 Training")
	for _, wt := range models.AllWorkerTypes() {
		fmt.Printf("   %-10s %.0f\n", wt, catalog.TrainingWorkload[wt])
	}
}

func formatCosts(costs models.Costs) string {
	if costs.IsZero() {
		return "-"
	}
	var parts []string
	costs.Each(func(rt models.ResourceType, q float64) {
		parts = append(parts, fmt.Sprintf("%s %.0f", rt, q))
	})
	return strings.Join(parts, ", ")
}

// formatTime renders simulated seconds as m:ss or h:mm:ss
func formatTime(seconds float64) string {
	total := int(seconds + 0.5)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
