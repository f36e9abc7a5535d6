package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordjournal/xcproj/internal/pbxid"
	"github.com/wordjournal/xcproj/internal/verify"
)

func populate(t *testing.T, root string) {
	t.Helper()
	for _, r := range verify.RequiredFiles {
		p := filepath.Join(root, filepath.FromSlash(r.RelPath()))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGenerateThenVerifyThenLint(t *testing.T) {
	root := t.TempDir()
	populate(t, root)
	ctx := context.Background()

	_, before, err := handleVerifyProject(ctx, nil, projectInput{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if before.Passed || !strings.Contains(before.Message, "project file not found") {
		t.Fatalf("verify before generate = %+v", before)
	}

	_, gen, err := handleGenerateProject(ctx, nil, projectInput{Root: root})
	if err != nil {
		t.Fatalf("generate_project: %v", err)
	}
	if want := filepath.Join(root, "WordJournal.xcodeproj", "project.pbxproj"); gen.Manifest != want {
		t.Errorf("Manifest = %q, want %q", gen.Manifest, want)
	}
	if gen.Objects == 0 {
		t.Error("no objects generated")
	}

	_, after, err := handleVerifyProject(ctx, nil, projectInput{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if !after.Passed || len(after.Present) != 13 || len(after.Missing) != 0 {
		t.Fatalf("verify after generate = %+v", after)
	}

	_, lint, err := handleLintProject(ctx, nil, lintInput{Path: gen.Manifest})
	if err != nil {
		t.Fatalf("lint_project: %v", err)
	}
	if len(lint.Errors) != 0 || len(lint.Warnings) != 0 {
		t.Errorf("lint = %+v", lint)
	}
}

func TestVerifyReportsMissingFile(t *testing.T) {
	root := t.TempDir()
	populate(t, root)
	if err := os.Remove(filepath.Join(root, "WordJournal", "Utilities", "HotKeyManager.swift")); err != nil {
		t.Fatal(err)
	}

	_, out, err := handleVerifyProject(context.Background(), nil, projectInput{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"WordJournal/Utilities/HotKeyManager.swift"}, out.Missing); diff != "" {
		t.Errorf("missing (-want +got):\n%s", diff)
	}
	if len(out.Present) != 12 || out.Passed {
		t.Errorf("out = %+v", out)
	}
}

func TestGenerateWithCustomLayout(t *testing.T) {
	root := t.TempDir()
	yml := "name: Notes\nfiles: [NotesApp.swift]\n"
	if err := os.WriteFile(filepath.Join(root, "notes.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, gen, err := handleGenerateProject(context.Background(), nil, projectInput{Root: root, Layout: "notes.yml"})
	if err != nil {
		t.Fatalf("generate_project: %v", err)
	}
	if !strings.HasSuffix(gen.Manifest, filepath.Join("Notes.xcodeproj", "project.pbxproj")) {
		t.Errorf("Manifest = %q", gen.Manifest)
	}

	_, out, err := handleVerifyProject(context.Background(), nil, projectInput{Root: root, Layout: "notes.yml"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Notes/NotesApp.swift"}, out.Missing); diff != "" {
		t.Errorf("missing (-want +got):\n%s", diff)
	}
}

func TestGenerateRejectsInvalidLayoutWithoutWriting(t *testing.T) {
	root := t.TempDir()
	yml := "name: Demo\nfiles: [DemoApp.swift, DemoApp.swift]\n"
	if err := os.WriteFile(filepath.Join(root, "demo.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := handleGenerateProject(context.Background(), nil, projectInput{Root: root, Layout: "demo.yml"})
	if err == nil || !strings.Contains(err.Error(), "duplicate file") {
		t.Fatalf("generate_project err = %v, want duplicate file", err)
	}
	if _, err := os.Stat(filepath.Join(root, "Demo.xcodeproj")); !os.IsNotExist(err) {
		t.Errorf("bundle created for a rejected layout: %v", err)
	}
}

func TestGenerateCommentTerminatorInGroupName(t *testing.T) {
	root := t.TempDir()
	yml := "name: Demo\nfiles: [DemoApp.swift]\ngroups:\n  - name: \"Views */ Extra\"\n    files: [Row.swift]\n"
	if err := os.WriteFile(filepath.Join(root, "demo.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, gen, err := handleGenerateProject(context.Background(), nil, projectInput{Root: root, Layout: "demo.yml"})
	if err != nil {
		t.Fatalf("generate_project: %v", err)
	}
	_, lint, err := handleLintProject(context.Background(), nil, lintInput{Path: gen.Manifest})
	if err != nil {
		t.Fatalf("lint_project on generated manifest: %v", err)
	}
	if len(lint.Errors) != 0 {
		t.Errorf("lint errors: %v", lint.Errors)
	}
}

func TestLintReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.pbxproj")
	if err := os.WriteFile(path, []byte("{ objects = { "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := handleLintProject(context.Background(), nil, lintInput{Path: path}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewIdentifiers(t *testing.T) {
	ctx := context.Background()
	_, out, err := handleNewIdentifiers(ctx, nil, identifiersInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Identifiers) != 1 || !pbxid.Valid(out.Identifiers[0]) {
		t.Fatalf("default = %+v", out)
	}

	_, out, err = handleNewIdentifiers(ctx, nil, identifiersInput{Count: 50})
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, id := range out.Identifiers {
		if seen[id] {
			t.Fatalf("duplicate identifier %s", id)
		}
		seen[id] = true
	}
	if len(seen) != 50 {
		t.Errorf("got %d identifiers, want 50", len(seen))
	}

	for _, n := range []int{-1, maxIdentifiers + 1} {
		if _, _, err := handleNewIdentifiers(ctx, nil, identifiersInput{Count: n}); err == nil {
			t.Errorf("count %d: expected error", n)
		}
	}
}

func TestServerListsAndCallsTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := newServer("test").Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("connect server: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"generate_project", "lint_project", "new_identifiers", "verify_project"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("tools (-want +got):\n%s", diff)
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "new_identifiers",
		Arguments: map[string]any{"count": 3},
	})
	if err != nil {
		t.Fatalf("call new_identifiers: %v", err)
	}
	if result.IsError {
		t.Fatalf("new_identifiers failed: %+v", result)
	}
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatal(err)
	}
	var out identifiersOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	if len(out.Identifiers) != 3 {
		t.Errorf("identifiers = %v", out.Identifiers)
	}
}
