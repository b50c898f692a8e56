package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agencysim/growth-simulator/internal/calculation"
	"github.com/agencysim/growth-simulator/internal/config"
	"github.com/agencysim/growth-simulator/internal/output"
)

var (
	configPath     string
	benchmarksPath string
	outputFormat   string
	outputPath     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the scenarios in a configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		configuration, err := parser.LoadFromFile(configPath)
		if err != nil {
			return err
		}

		engine := calculation.NewSimulationEngine()
		if benchmarksPath != "" {
			tables, err := parser.LoadBenchmarkTables(benchmarksPath)
			if err != nil {
				return err
			}
			engine = calculation.NewSimulationEngineWithTables(tables)
		}
		engine.SetLogger(logrus.StandardLogger())

		comparison, err := engine.RunScenarios(cmd.Context(), configuration)
		if err != nil {
			return err
		}

		formatter, err := output.ByName(outputFormat)
		if err != nil {
			return err
		}
		if outputPath != "" {
			if err := output.WriteFormatted(formatter, comparison, outputPath); err != nil {
				return err
			}
			logrus.Infof("wrote %s report to %s", formatter.Name(), outputPath)
			return nil
		}
		data, err := formatter.Format(comparison)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario configuration file (YAML)")
	runCmd.Flags().StringVar(&benchmarksPath, "benchmarks", "", "benchmark tables file (YAML); defaults to compiled-in tables")
	runCmd.Flags().StringVar(&outputFormat, "format", "console", "output format (console, json)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write report to file instead of stdout")
	if err := runCmd.MarkFlagRequired("config"); err != nil {
		panic(fmt.Sprintf("marking config flag required: %v", err))
	}
	rootCmd.AddCommand(runCmd)
}
