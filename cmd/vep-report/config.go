package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vep-report/internal/ensembl"
)

// defaultTimeout is the annotation request timeout in seconds.
const defaultTimeout = 30

// effectiveConfig returns the settings the report command would run with:
// values from ~/.vep-report.yaml where set, built-in defaults otherwise.
func effectiveConfig() Config {
	cfg := Config{
		Endpoint: ensembl.DefaultBaseURL,
		Timeout:  defaultTimeout,
	}
	if viper.IsSet("endpoint") {
		cfg.Endpoint = viper.GetString("endpoint")
	}
	if viper.IsSet("timeout") {
		cfg.Timeout = viper.GetInt("timeout")
	}
	return cfg
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vep-report configuration",
		Long: `Show, get, or set the annotation service settings. Config is stored in
~/.vep-report.yaml; valid keys are endpoint and timeout. Values are
validated the same way the report command validates them.`,
		Example: `  vep-report config                                          # show effective config
  vep-report config set endpoint http://rest.ensembl.org/vep/human/region
  vep-report config set timeout 60
  vep-report config get endpoint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get the effective value of a configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	cfg := effectiveConfig()

	out, err := yaml.Marshal(map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"timeout":  cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	// Apply the candidate value on top of the effective config and run the
	// same validation the report command runs, so a bad endpoint or
	// timeout is rejected here instead of at report time.
	cfg := effectiveConfig()

	switch key {
	case "endpoint":
		cfg.Endpoint = value
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be a number of seconds, got %q", value)
		}
		cfg.Timeout = n
	default:
		return fmt.Errorf("unknown config key %q (valid keys: endpoint, timeout)", key)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	switch key {
	case "endpoint":
		viper.Set(key, cfg.Endpoint)
	case "timeout":
		viper.Set(key, cfg.Timeout)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vep-report.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	cfg := effectiveConfig()

	switch key {
	case "endpoint":
		fmt.Println(cfg.Endpoint)
	case "timeout":
		fmt.Println(cfg.Timeout)
	default:
		return fmt.Errorf("unknown config key %q (valid keys: endpoint, timeout)", key)
	}
	return nil
}
