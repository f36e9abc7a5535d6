package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordjournal/xcproj/internal/config"
	"github.com/wordjournal/xcproj/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:               "xcproj",
	Short:             "Generate and verify the WordJournal Xcode project",
	Long:              "xcproj writes a consistent project.pbxproj for WordJournal, checks an existing one for broken references, and verifies that the expected source files are on disk.",
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	rootFlag    string
	layoutFlag  string
	verboseFlag bool

	cfg *config.Config
)

var logger = zap.NewNop()

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "project directory (default: current directory, or $XCPROJ_ROOT)")
	rootCmd.PersistentFlags().StringVar(&layoutFlag, "layout", "", "YAML layout file replacing the built-in WordJournal layout (or $XCPROJ_LAYOUT)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging (or $XCPROJ_VERBOSE)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(idsCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setup loads the environment configuration and lets flags override it.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		if err := c.SetRoot(rootFlag); err != nil {
			return err
		}
	}
	if flags.Changed("layout") {
		c.LayoutPath = layoutFlag
	}
	if flags.Changed("verbose") {
		c.Verbose = verboseFlag
	}

	l, err := logging.New(c.Verbose)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	logger.Debug("configuration loaded",
		zap.String("root", cfg.Root),
		zap.String("layout", cfg.LayoutPath))
	return nil
}
