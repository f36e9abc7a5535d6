package verify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wordjournal/xcproj/internal/layout"
)

func populate(t *testing.T, root string, reqs []Requirement, skip string) {
	t.Helper()
	for _, r := range reqs {
		if r.Name == skip {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(r.RelPath()))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func writeManifest(t *testing.T, root string) {
	t.Helper()
	p := filepath.Join(root, DefaultManifest("WordJournal"))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("// !$*UTF8*$!\n{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunAllPresent(t *testing.T) {
	root := t.TempDir()
	populate(t, root, RequiredFiles, "")
	writeManifest(t, root)

	report := Run(root, RequiredFiles, DefaultManifest("WordJournal"))
	if len(report.Entries) != 13 {
		t.Fatalf("entries = %d, want 13", len(report.Entries))
	}
	for _, e := range report.Entries {
		if !e.Present {
			t.Errorf("%s reported missing: %s", e.Name, e.Reason)
		}
	}
	if !report.ManifestPresent {
		t.Errorf("manifest reported missing: %s", report.ManifestReason)
	}
	if !report.Passed() {
		t.Error("Passed() = false, want true")
	}
}

func TestRunOneMissing(t *testing.T) {
	root := t.TempDir()
	populate(t, root, RequiredFiles, "HotKeyManager.swift")
	writeManifest(t, root)

	report := Run(root, RequiredFiles, DefaultManifest("WordJournal"))
	missing := report.Missing()
	if len(missing) != 1 {
		t.Fatalf("missing = %d, want 1", len(missing))
	}
	want := filepath.Join(root, "WordJournal", "Utilities", "HotKeyManager.swift")
	if missing[0].Name != "HotKeyManager.swift" || missing[0].Path != want {
		t.Errorf("missing entry = %+v, want path %s", missing[0], want)
	}
	if missing[0].Reason != "file does not exist" {
		t.Errorf("reason = %q", missing[0].Reason)
	}
	if report.Passed() {
		t.Error("Passed() = true with a missing file")
	}
	if len(report.Entries) != 13 {
		t.Errorf("entries = %d, want every entry checked", len(report.Entries))
	}
}

func TestRunManifestCheckedIndependently(t *testing.T) {
	root := t.TempDir()
	populate(t, root, RequiredFiles, "")

	report := Run(root, RequiredFiles, DefaultManifest("WordJournal"))
	if len(report.Missing()) != 0 {
		t.Fatalf("unexpected missing files: %+v", report.Missing())
	}
	if report.ManifestPresent {
		t.Fatal("manifest should be missing")
	}
	if report.Passed() {
		t.Error("Passed() = true without a manifest")
	}
	if !strings.HasSuffix(report.ManifestPath, filepath.Join("WordJournal.xcodeproj", "project.pbxproj")) {
		t.Errorf("ManifestPath = %q", report.ManifestPath)
	}
}

func TestRunDirectoryIsNotAFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "WordJournal", "Info.plist"), 0o755); err != nil {
		t.Fatal(err)
	}
	report := Run(root, []Requirement{{"Info.plist", "WordJournal/"}}, filepath.Join(root, "missing"))
	if report.Entries[0].Present {
		t.Fatal("directory should not satisfy a file requirement")
	}
	if !strings.Contains(report.Entries[0].Reason, "directory") {
		t.Errorf("reason = %q", report.Entries[0].Reason)
	}
}

func TestFromLayoutMatchesRequiredFiles(t *testing.T) {
	l, err := layout.Default()
	if err != nil {
		t.Fatal(err)
	}
	paths := func(reqs []Requirement) []string {
		var out []string
		for _, r := range reqs {
			out = append(out, r.RelPath())
		}
		sort.Strings(out)
		return out
	}
	if diff := cmp.Diff(paths(RequiredFiles), paths(FromLayout(l))); diff != "" {
		t.Errorf("layout files differ from RequiredFiles (-want +got):\n%s", diff)
	}
}

func TestDefaultManifest(t *testing.T) {
	want := filepath.Join("WordJournal.xcodeproj", "project.pbxproj")
	if got := DefaultManifest("WordJournal"); got != want {
		t.Errorf("DefaultManifest = %q, want %q", got, want)
	}
}
