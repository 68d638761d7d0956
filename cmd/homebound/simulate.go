package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/config"
	"github.com/napolitain/homebound/internal/logging"
	"github.com/napolitain/homebound/internal/models"
	"github.com/napolitain/homebound/internal/scenario"
	"github.com/napolitain/homebound/internal/snapshot"
)

func newSimulateCmd() *cobra.Command {
	var (
		tracePath string
		logLevel  string
	)
	cmd := &cobra.Command{
		Use:   "simulate SCRIPT",
		Short: "Play a JSON scenario script against a fresh colony",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), args[0], tracePath, logLevel)
		},
	}
	cmd.Flags().StringVarP(&tracePath, "trace", "t", "", "Write one snapshot per tick as JSON lines (.lz4 compresses)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override logging.level")
	return cmd
}

func runSimulate(ctx context.Context, path, tracePath, logLevel string) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := simulationLogger(cfg.Logging, logLevel)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg.Simulation.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	script, err := scenario.Load(path)
	if err != nil {
		return err
	}
	c, err := scenario.NewColony(script, catalog, colony.WithName(script.Name), colony.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create colony: %w", err)
	}

	if !quiet {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Homebound                │")
		titleColor.Println("│  Scenario Simulation      │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
		infoColor.Printf("📜 %s: %d steps over %s at dt=%.4fs\n\n",
			displayName(script), len(script.Steps), formatTime(script.Duration), script.DT)
	}

	runner := scenario.NewRunner(script, c, logger)

	var trace *snapshot.TraceWriter
	if tracePath != "" {
		trace, err = snapshot.CreateTrace(tracePath)
		if err != nil {
			return err
		}
		var traceErr error
		runner.OnTick(func(c *colony.Colony) {
			if traceErr == nil {
				traceErr = trace.Write(snapshot.Take(c))
			}
		})
		defer func() {
			if traceErr != nil {
				logger.Error("trace incomplete", "error", traceErr)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	report, runErr := runner.Run(ctx)
	if trace != nil {
		if err := trace.Close(); err != nil {
			return err
		}
		if !quiet {
			infoColor.Printf("🧾 Wrote %d snapshots to %s\n\n", trace.Lines(), tracePath)
		}
	}
	if runErr != nil {
		return runErr
	}

	final := snapshot.Take(c)
	if !quiet {
		printResults(report)
		fmt.Println()
		printStock(final)
		fmt.Println()
	}

	successColor.Printf("✓ %d/%d steps applied in %d ticks (%s simulated)\n",
		report.Applied(), len(report.Results), report.Ticks, formatTime(report.Elapsed))
	fmt.Printf("   Power: %.1f produced, %.1f consumed\n", final.Power.Produced, final.Power.Consumed)
	fmt.Printf("   Workers: %d engineers, %d scientists, %d pilots\n",
		final.Workforce.Engineers.Total, final.Workforce.Scientists.Total, final.Workforce.Pilots)
	fmt.Printf("   Digest: %s\n", final.Digest)
	return nil
}

func simulationLogger(cfg config.LoggingConfig, level string) (*slog.Logger, error) {
	if level != "" {
		cfg.Level = level
	}
	return logging.New(cfg)
}

func displayName(s *scenario.Script) string {
	if s.Name == "" {
		return "unnamed scenario"
	}
	return s.Name
}

func printResults(report *scenario.Report) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "At", "Tick", "Action", "Cell", "Result"}),
	)

	for i, res := range report.Results {
		result := "✓"
		if !res.Applied {
			result = "✗ refused"
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			formatTime(res.At),
			fmt.Sprintf("%d", res.Tick),
			string(res.Action),
			colony.Coords{X: res.X, Y: res.Y}.String(),
			result,
		}
		_ = table.Append(row)
	}

	_ = table.Render()
}

func printStock(v snapshot.View) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Resource", "Stock", "Capacity"}),
	)
	for _, rt := range models.AllResourceTypes() {
		capacity := v.MaxStorage[rt]
		if capacity == 0 && v.Stock[rt] == 0 {
			continue
		}
		_ = table.Append([]string{string(rt), fmt.Sprintf("%.1f", v.Stock[rt]), fmt.Sprintf("%.0f", capacity)})
	}
	for _, it := range models.AllItemTypes() {
		if n := v.Items[it]; n > 0 {
			_ = table.Append([]string{string(it), fmt.Sprintf("%d", n), ""})
		}
	}
	_ = table.Render()
}
