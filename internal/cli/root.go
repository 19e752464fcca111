package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/energyprofiles/reffix/internal/branding"
	"github.com/energyprofiles/reffix/internal/config"
	"github.com/energyprofiles/reffix/internal/fixer"
	"github.com/energyprofiles/reffix/internal/mapping"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var fixDryRun bool

// newFS returns the filesystem the fixer runs on.
var newFS = afero.NewOsFs

func init() {
	flags := rootCmd.Flags()
	flags.String("dir", config.DefaultTargetDir, "Directory containing profile description files")
	flags.String("ext", config.DefaultExtension, "Description file extension")
	flags.BoolVar(&fixDryRun, "dry-run", false, "Report changes without writing files")
	rootCmd.PersistentFlags().String("color", config.DefaultColor, "Color output: auto, always, never")
	bindFlags()
}

// bindFlags lets flags take precedence over env and the config file.
func bindFlags() {
	_ = viper.BindPFlag(config.KeyTargetDir, rootCmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag(config.KeyExtension, rootCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag(config.KeyColor, rootCmd.PersistentFlags().Lookup("color"))
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` rewrites references to renamed component files inside profile
description files. Every description file (default *.yaml, see --ext) under the
target directory is scanned and
each old filename from the built-in mapping table is replaced with its new name.
Files whose content does not change are left untouched.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	table, err := mapping.Default()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color, err := useColor(config.Color(), out)
	if err != nil {
		return err
	}

	display := func(path string) string { return path }
	if cwd, err := os.Getwd(); err == nil {
		display = fixer.RelativeTo(cwd)
	}

	f := fixer.New(newFS(), config.TargetDir(), table,
		fixer.WithExtension(config.Extension()),
		fixer.WithDryRun(fixDryRun),
		fixer.WithDisplay(display),
		fixer.WithReporter(fixer.NewReporter(out, color)),
	)
	f.Run(cmd.Context())
	return nil
}

// Execute runs the root command with build info injected via ldflags.
// Cancelling ctx stops the fixer between files.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
