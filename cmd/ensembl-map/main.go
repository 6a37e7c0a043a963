// Package main provides the ensembl-map command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ensembl-map",
	Short: "Extract genomic feature records from Ensembl transcripts",
	Long: `ensembl-map builds coordinate-bearing feature records (gene, transcript,
exon, CDS, protein) from Ensembl/GENCODE transcripts. Feature types are
selected at runtime by tag, so the same pipeline serves any record kind.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("assembly", "GRCh38", "Genome assembly: GRCh37 or GRCh38")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default: ~/.ensembl-map)")
	viper.BindPFlag("assembly", rootCmd.PersistentFlags().Lookup("assembly"))
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ensembl-map version %s (%s) built %s\n", version, commit, date)
	},
}

// initConfig reads ~/.ensembl-map.yaml and ENSEMBL_MAP_* environment
// variables. Flags win over config, config over defaults.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".ensembl-map")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ENSEMBL_MAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine; any other read error is not worth dying for.
	_ = viper.ReadInConfig()
}

// setupLogger builds the process logger. Verbose mode uses a development
// logger on stderr; otherwise only warnings and errors are shown.
func setupLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

// dataDir returns the configured data directory.
func dataDir() (string, error) {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ensembl-map"), nil
}

// assemblyDir returns the per-assembly data directory.
func assemblyDir(assembly string) (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.ToLower(assembly)), nil
}
