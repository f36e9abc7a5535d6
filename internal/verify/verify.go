// Package verify checks that the files a project expects exist on disk.
package verify

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/wordjournal/xcproj/internal/layout"
	"github.com/wordjournal/xcproj/internal/pbxproj"
)

// Requirement is one expected file: Name inside Dir, relative to the project root.
type Requirement struct {
	Name string
	Dir  string
}

// RelPath returns the slash-separated path of the file below the root.
func (r Requirement) RelPath() string {
	return path.Join(r.Dir, r.Name)
}

// RequiredFiles is the WordJournal source tree.
var RequiredFiles = []Requirement{
	{"WordJournalApp.swift", "WordJournal/"},
	{"WordEntry.swift", "WordJournal/Models/"},
	{"DictionaryResult.swift", "WordJournal/Models/"},
	{"AccessibilityMonitor.swift", "WordJournal/Services/"},
	{"DictionaryService.swift", "WordJournal/Services/"},
	{"JournalStorage.swift", "WordJournal/Services/"},
	{"DefinitionPopupView.swift", "WordJournal/Views/"},
	{"JournalView.swift", "WordJournal/Views/"},
	{"MenuBarView.swift", "WordJournal/Views/"},
	{"PreferencesView.swift", "WordJournal/Views/"},
	{"HotKeyManager.swift", "WordJournal/Utilities/"},
	{"Info.plist", "WordJournal/"},
	{"dictionary.json", "WordJournal/Resources/"},
}

// FromLayout lists the files a layout places on disk, in layout order.
func FromLayout(l *layout.Project) []Requirement {
	entries := l.Entries()
	reqs := make([]Requirement, 0, len(entries))
	for _, f := range entries {
		dir := path.Dir(path.Join(l.SourceRoot, f.RelPath))
		reqs = append(reqs, Requirement{Name: f.Name, Dir: dir + "/"})
	}
	return reqs
}

// EntryStatus is the outcome for one Requirement.
type EntryStatus struct {
	Requirement
	Path    string
	Present bool
	Reason  string
}

// Report is the result of a verification run.
type Report struct {
	Entries         []EntryStatus
	ManifestPath    string
	ManifestPresent bool
	ManifestReason  string
}

// Missing returns the entries that were not found.
func (r *Report) Missing() []EntryStatus {
	var out []EntryStatus
	for _, e := range r.Entries {
		if !e.Present {
			out = append(out, e)
		}
	}
	return out
}

// Passed reports whether every entry and the manifest exist.
func (r *Report) Passed() bool {
	return r.ManifestPresent && len(r.Missing()) == 0
}

// Run checks each requirement below root, then the manifest file. A missing
// file does not stop the remaining checks.
func Run(root string, table []Requirement, manifest string) *Report {
	report := &Report{Entries: make([]EntryStatus, 0, len(table))}
	for _, req := range table {
		status := EntryStatus{
			Requirement: req,
			Path:        filepath.Join(root, filepath.FromSlash(req.RelPath())),
		}
		status.Present, status.Reason = checkFile(status.Path)
		report.Entries = append(report.Entries, status)
	}

	report.ManifestPath = manifest
	if !filepath.IsAbs(manifest) {
		report.ManifestPath = filepath.Join(root, manifest)
	}
	report.ManifestPresent, report.ManifestReason = checkFile(report.ManifestPath)
	return report
}

// DefaultManifest returns the manifest location for app relative to a project root.
func DefaultManifest(app string) string {
	return pbxproj.ManifestPath("", app)
}

func checkFile(p string) (bool, string) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, "file does not exist"
		}
		return false, fmt.Sprintf("unable to stat file: %v", err)
	}
	if info.IsDir() {
		return false, "path resolves to a directory, expected a file"
	}
	return true, ""
}
