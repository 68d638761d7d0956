package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/service"
	"github.com/napolitain/homebound/internal/tui"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Play a live colony in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg.Simulation.DataDir)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			// Logs would tear the alternate screen, so the colony stays silent
			opts := []colony.Option{colony.WithName(cfg.Simulation.ColonyName)}
			var c *colony.Colony
			if cfg.Simulation.StartingColony {
				c, err = colony.NewStartingColony(catalog, opts...)
			} else {
				c, err = colony.New(catalog, opts...)
			}
			if err != nil {
				return fmt.Errorf("failed to create colony: %w", err)
			}

			session := service.NewSession(c)
			driver := service.NewDriver(session, cfg.Simulation.TickRate, nil)
			_, err = tea.NewProgram(tui.New(session, driver), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
