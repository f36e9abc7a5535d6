package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordjournal/xcproj/internal/pbxproj"
	"github.com/wordjournal/xcproj/internal/terminal"
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Check a project.pbxproj for broken references",
	Long:  "Parse a project.pbxproj and report identifiers that are referenced but never defined, defined more than once, or defined as the wrong kind of object. Unreferenced objects are reported as warnings. Defaults to the manifest of the configured layout.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runLint(path)
	},
}

func runLint(path string) error {
	if path == "" {
		l, err := loadLayout()
		if err != nil {
			return err
		}
		path = cfg.ManifestPath(l.Name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := pbxproj.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	problems := pbxproj.Check(doc)
	for _, p := range problems {
		if p.Severity == pbxproj.SeverityError {
			terminal.Error(p.String())
		} else {
			terminal.Warning(p.String())
		}
	}

	errs := pbxproj.Errors(problems)
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d broken references", relToRoot(path), len(errs))
	}
	terminal.Success(fmt.Sprintf("%s: %d objects, every reference resolves", relToRoot(path), len(doc.Objects())))
	return nil
}
