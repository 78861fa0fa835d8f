package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "vep-report",
		Short: "Annotated variant report generator",
		Long: `vep-report reads a VCF file, fetches per-variant annotations from the
Ensembl VEP REST service, and writes the combined results as a binary
snapshot and a CSV report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newReportCmd(&debug))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initConfig loads ~/.vep-report.yaml if it exists. A missing config file
// is not an error; defaults come from the flag definitions.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	viper.SetConfigFile(filepath.Join(home, ".vep-report.yaml"))
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
