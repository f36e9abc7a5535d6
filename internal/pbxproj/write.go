package pbxproj

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the manifest file inside the .xcodeproj bundle.
const ManifestName = "project.pbxproj"

// ErrInconsistent is returned by Write when the rendered manifest does not
// parse back or has broken references.
var ErrInconsistent = errors.New("manifest is inconsistent")

// BundlePath returns <root>/<app>.xcodeproj.
func BundlePath(root, appName string) string {
	return filepath.Join(root, appName+".xcodeproj")
}

// ManifestPath returns <root>/<app>.xcodeproj/project.pbxproj.
func ManifestPath(root, appName string) string {
	return filepath.Join(BundlePath(root, appName), ManifestName)
}

// CheckProject renders p, parses the text back and returns its error-level
// problems. A parse failure is returned as a single problem.
func CheckProject(p *Project) []Problem {
	return checkRendered(Render(p))
}

func checkRendered(out string) []Problem {
	doc, err := Parse([]byte(out))
	if err != nil {
		return []Problem{{Severity: SeverityError, Message: err.Error()}}
	}
	return Errors(Check(doc))
}

// Write renders p and writes it to path, creating the bundle directory if
// needed. Existing content is overwritten. Nothing is written when the
// rendered manifest fails CheckProject.
func Write(path string, p *Project) error {
	out := Render(p)
	if problems := checkRendered(out); len(problems) > 0 {
		return fmt.Errorf("refusing to write %s: %s (%d problems): %w", path, problems[0], len(problems), ErrInconsistent)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
