package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeys is the settings surface ensembl-map reads from its config
// file. Anything else in the file is ignored, so set/get reject unknown
// keys instead of silently writing dead entries.
var configKeys = []string{"assembly", "data_dir"}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ensembl-map configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.ensembl-map.yaml.",
		Example: `  ensembl-map config                      # show effective config
  ensembl-map config set assembly GRCh37  # set the default assembly
  ensembl-map config get data_dir         # get an effective value`,
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

func validConfigKey(key string) error {
	for _, k := range configKeys {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(configKeys, ", "))
}

// normalizeAssembly canonicalizes common spellings of the two supported
// assemblies. Anything else is rejected up front rather than failing later
// at download or lookup time.
func normalizeAssembly(value string) (string, error) {
	switch strings.ToLower(value) {
	case "grch37", "37", "hg19":
		return "GRCh37", nil
	case "grch38", "38", "hg38":
		return "GRCh38", nil
	}
	return "", fmt.Errorf("unsupported assembly %q (supported: GRCh37, GRCh38)", value)
}

// normalizeConfigValue validates and canonicalizes a value for a key.
func normalizeConfigValue(key, value string) (string, error) {
	switch key {
	case "assembly":
		return normalizeAssembly(value)
	case "data_dir":
		if value == "~" || strings.HasPrefix(value, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			return filepath.Join(home, strings.TrimPrefix(value[1:], "/")), nil
		}
		return value, nil
	}
	return value, nil
}

// effectiveConfig resolves every known key to the value a command would
// actually use, defaults included.
func effectiveConfig() (map[string]string, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"assembly": viper.GetString("assembly"),
		"data_dir": dir,
	}, nil
}

func runConfigShow() error {
	effective, err := effectiveConfig()
	if err != nil {
		return err
	}

	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		fmt.Printf("# %s\n", cfgFile)
	} else {
		fmt.Println("# defaults (no config file; change with: ensembl-map config set <key> <value>)")
	}

	out, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	if err := validConfigKey(key); err != nil {
		return err
	}
	value, err := normalizeConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, value)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".ensembl-map.yaml")
	}

	// Persist only the known keys, so flag-bound settings viper has picked
	// up do not leak into the file.
	settings := make(map[string]string)
	for _, k := range configKeys {
		if v := viper.GetString(k); v != "" {
			settings[k] = v
		}
	}
	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(cfgFile, out, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	if err := validConfigKey(key); err != nil {
		return err
	}
	effective, err := effectiveConfig()
	if err != nil {
		return err
	}
	fmt.Println(effective[key])
	return nil
}
