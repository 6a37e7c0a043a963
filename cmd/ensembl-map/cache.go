package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattdoug604/ensembl-map/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the transcript snapshot",
		Long: `Manage the on-disk transcript snapshot built from the GENCODE files.
The snapshot lets repeated runs skip GTF and FASTA parsing.`,
	}

	cmd.AddCommand(newCacheBuildCmd())
	cmd.AddCommand(newCacheInfoCmd())
	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

func newCacheBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Parse the GENCODE files and write the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheBuild(viper.GetString("assembly"))
		},
	}
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show snapshot status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheInfo(viper.GetString("assembly"))
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(viper.GetString("assembly"))
		},
	}
}

func runCacheBuild(assembly string) error {
	dir, err := assemblyDir(assembly)
	if err != nil {
		return err
	}

	gtfPath, fastaPath, found := findGENCODEFiles(dir)
	if !found {
		return fmt.Errorf("no GENCODE annotation found for %s in %s (run: ensembl-map download --assembly %s)", assembly, dir, assembly)
	}

	gtfFP, err := cache.StatFile(gtfPath)
	if err != nil {
		return fmt.Errorf("stat GTF: %w", err)
	}
	var fastaFP cache.FileFingerprint
	if fastaPath != "" {
		if fastaFP, err = cache.StatFile(fastaPath); err != nil {
			return fmt.Errorf("stat FASTA: %w", err)
		}
	}

	fmt.Printf("Parsing %s\n", gtfPath)
	if fastaPath != "" {
		fmt.Printf("Parsing %s\n", fastaPath)
	}

	c := cache.New()
	if err := cache.NewGENCODELoader(gtfPath, fastaPath).Load(c); err != nil {
		return err
	}

	snap := cache.NewSnapshot(dir)
	if err := snap.Write(c, gtfFP, fastaFP); err != nil {
		return err
	}

	fmt.Printf("Wrote %d transcripts to %s\n", c.TranscriptCount(), snap.Path())
	return nil
}

func runCacheInfo(assembly string) error {
	dir, err := assemblyDir(assembly)
	if err != nil {
		return err
	}

	snap := cache.NewSnapshot(dir)
	info, err := os.Stat(snap.Path())
	if err != nil {
		fmt.Printf("No snapshot for %s (looked in %s)\n", assembly, dir)
		return nil
	}

	fmt.Printf("Snapshot: %s\n", snap.Path())
	fmt.Printf("Size:     %s\n", formatSize(info.Size()))
	fmt.Printf("Built:    %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	gtfPath, fastaPath, found := findGENCODEFiles(dir)
	if !found {
		fmt.Println("Status:   source GTF missing")
		return nil
	}
	gtfFP, err := cache.StatFile(gtfPath)
	if err != nil {
		return err
	}
	var fastaFP cache.FileFingerprint
	if fastaPath != "" {
		if fastaFP, err = cache.StatFile(fastaPath); err != nil {
			return err
		}
	}

	if snap.Valid(gtfFP, fastaFP) {
		fmt.Println("Status:   valid")
	} else {
		fmt.Println("Status:   stale (source files changed; run: ensembl-map cache build)")
	}
	return nil
}

func runCacheClear(assembly string) error {
	dir, err := assemblyDir(assembly)
	if err != nil {
		return err
	}

	cache.NewSnapshot(dir).Clear()
	fmt.Printf("Cleared snapshot for %s\n", assembly)
	return nil
}
