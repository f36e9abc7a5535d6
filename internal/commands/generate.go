package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordjournal/xcproj/internal/pbxproj"
	"github.com/wordjournal/xcproj/internal/terminal"
)

var generateStdout bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write <App>.xcodeproj/project.pbxproj",
	Long:  "Allocate an identifier for every object in the project, emit the manifest from that table, and overwrite <App>.xcodeproj/project.pbxproj. The written file is checked for dangling references before the command reports success.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(generateStdout)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print the manifest instead of writing it")
}

func runGenerate(toStdout bool) error {
	l, err := loadLayout()
	if err != nil {
		return err
	}

	g := &pbxproj.Generator{Logger: logger}
	p, tbl, err := g.Build(l)
	if err != nil {
		return err
	}
	if problems := pbxproj.CheckProject(p); len(problems) > 0 {
		for _, pr := range problems {
			terminal.Error(pr.String())
		}
		return fmt.Errorf("generated %d problems: %w", len(problems), pbxproj.ErrInconsistent)
	}

	if toStdout {
		_, err := fmt.Fprint(terminal.Output(), pbxproj.Render(p))
		return err
	}

	path := cfg.ManifestPath(l.Name)
	if _, err := os.Stat(path); err == nil {
		logger.Debug("overwriting existing manifest", zap.String("path", path))
	}
	if err := pbxproj.Write(path, p); err != nil {
		return err
	}
	logger.Info("manifest written",
		zap.String("path", path),
		zap.Int("objects", len(p.Objects)),
		zap.Int("identifiers", tbl.Len()))

	terminal.Success(fmt.Sprintf("Created Xcode project at %s", relToRoot(pbxproj.BundlePath(cfg.Root, l.Name))))
	terminal.Success(fmt.Sprintf("%d objects, every reference resolves", len(p.Objects)))
	printNextSteps(
		fmt.Sprintf("Open %s.xcodeproj in Xcode", l.Name),
		"Verify all files are added to the target",
		"Build and run!",
	)
	return nil
}
