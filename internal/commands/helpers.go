package commands

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wordjournal/xcproj/internal/layout"
	"github.com/wordjournal/xcproj/internal/terminal"
)

// loadLayout returns the configured layout, the built-in one by default.
func loadLayout() (*layout.Project, error) {
	l, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	logger.Debug("layout loaded",
		zap.String("name", l.Name),
		zap.Int("files", len(l.Entries())))
	return l, nil
}

// relToRoot shortens p for display when it lies below the project root.
func relToRoot(p string) string {
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}

func printNextSteps(steps ...string) {
	terminal.Println("")
	terminal.Println("Next steps:")
	for i, s := range steps {
		terminal.Step(i+1, s)
	}
}
