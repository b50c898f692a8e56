package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agencysim/growth-simulator/internal/config"
)

var examplePath string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write a starter three-scenario configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration := config.NewInputParser().CreateExampleConfiguration()
		data, err := yaml.Marshal(configuration)
		if err != nil {
			return err
		}
		if examplePath == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(examplePath, data, 0644)
	},
}

func init() {
	exampleCmd.Flags().StringVarP(&examplePath, "output", "o", "", "write example config to file instead of stdout")
	rootCmd.AddCommand(exampleCmd)
}
