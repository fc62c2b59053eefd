// Package cli implements the lokator command line: resolving a test's data
// file, listing a project's test data and writing a starter configuration.
package cli

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/geocine/lokator/fileio"
	"github.com/spf13/cobra"
)

// Flags holds the values of all command flags
type Flags struct {
	Root        string
	ConfigFile  string
	Naming      string
	Named       string
	Default     bool
	Verbose     bool
	Settings    map[string]string
	Format      string
	GlobalDir   string
	AssetsDir   string
	DefaultFile string
	Yes         bool
	Force       bool
}

// NewRootCommand builds the lokator command tree on the given file system
func NewRootCommand(fs *fileio.AferoFileSystem, version string) *cobra.Command {
	var flags Flags

	rootCmd := &cobra.Command{
		Use:           "lokator",
		Short:         "Locate test data files by convention",
		Long:          `Resolve the data file a Go test consumes from its testdata directory, a zip archive of that directory or a shared global directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve <source-file> [test-name]",
		Short: "Print the data file a test resolves to",
		Long:  "Resolve the data file of a test the same way the test suite would and print its path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ResolveOptions{
				Root:       flags.Root,
				ConfigFile: flags.ConfigFile,
				Naming:     flags.Naming,
				SourceFile: args[0],
				Named:      flags.Named,
				Default:    flags.Default,
				Settings:   flags.Settings,
				Verbose:    flags.Verbose,
				Logger:     log.New(cmd.ErrOrStderr(), "", 0),
			}
			if len(args) == 2 {
				opts.TestName = args[1]
			}

			path, err := Resolve(fs, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	resolveCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Project root (defaults to the nearest directory holding go.mod)")
	resolveCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Config file (defaults to lokator.toml or lokator.yaml in the root)")
	resolveCmd.Flags().StringVarP(&flags.Naming, "naming", "n", "", "Naming convention: assert-act-arrange, simple, qualified or exact")
	resolveCmd.Flags().StringVar(&flags.Named, "named", "", "Resolve this file name instead of the test name")
	resolveCmd.Flags().BoolVar(&flags.Default, "default", false, "Resolve the configured default file")
	resolveCmd.Flags().StringToStringVar(&flags.Settings, "set", nil, "Override a file manager setting, e.g. --set global-directory=shared")
	resolveCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Report the selected file")
	rootCmd.AddCommand(resolveCmd)

	inventoryCmd := &cobra.Command{
		Use:   "inventory",
		Short: "List the project's test data",
		Long:  "Scan every assets directory, per-test folder and archive of the project and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, inv, err := Inventory(fs, InventoryOptions{
				Root:       flags.Root,
				ConfigFile: flags.ConfigFile,
				Format:     flags.Format,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			summary := color.New(color.FgGreen)
			if inv.HasConflicts() {
				summary = color.New(color.FgYellow)
			}
			summary.Fprintf(cmd.ErrOrStderr(), "%d locations, %d files\n", len(inv.Locations), inv.FileCount())
			return nil
		},
	}
	inventoryCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Project root (defaults to the nearest directory holding go.mod)")
	inventoryCmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Config file (defaults to lokator.toml or lokator.yaml in the root)")
	inventoryCmd.Flags().StringVarP(&flags.Format, "format", "f", "markdown", "Output format: markdown, html or yaml")
	rootCmd.AddCommand(inventoryCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter lokator.toml",
		Long:  "Create lokator.toml in the project root along with the assets and global directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workingRoot(fs, flags.Root)
			if err != nil {
				return err
			}
			opts := InitOptions{
				Root:        root,
				GlobalDir:   flags.GlobalDir,
				AssetsDir:   flags.AssetsDir,
				DefaultFile: flags.DefaultFile,
				Naming:      flags.Naming,
				Force:       flags.Force,
			}
			opts.SetDefaults()
			if !flags.Yes {
				FillInitOptionsInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), &opts)
			}

			path, err := Init(fs, opts)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Project root (defaults to the nearest directory holding go.mod)")
	initCmd.Flags().StringVar(&flags.GlobalDir, "global-dir", "", "Shared data directory, relative to the root")
	initCmd.Flags().StringVar(&flags.AssetsDir, "assets-dir", "", "Per-package data directory name")
	initCmd.Flags().StringVar(&flags.DefaultFile, "default-file", "", "File served by Using(DefaultFile)")
	initCmd.Flags().StringVarP(&flags.Naming, "naming", "n", "", "Naming convention: assert-act-arrange, simple, qualified or exact")
	initCmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip interactive prompts and use provided/default values")
	initCmd.Flags().BoolVar(&flags.Force, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)

	return rootCmd
}
