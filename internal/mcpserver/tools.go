package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wordjournal/xcproj/internal/config"
	"github.com/wordjournal/xcproj/internal/pbxid"
	"github.com/wordjournal/xcproj/internal/pbxproj"
	"github.com/wordjournal/xcproj/internal/verify"
)

// maxIdentifiers bounds a single new_identifiers call.
const maxIdentifiers = 1000

type projectInput struct {
	Root   string `json:"root,omitempty" jsonschema:"project directory; defaults to the server working directory"`
	Layout string `json:"layout,omitempty" jsonschema:"optional YAML layout file replacing the built-in WordJournal layout"`
}

type generateOutput struct {
	Manifest string `json:"manifest"`
	Objects  int    `json:"objects"`
	Message  string `json:"message"`
}

func loadConfig(input projectInput) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if input.Root != "" {
		if err := cfg.SetRoot(input.Root); err != nil {
			return nil, err
		}
	}
	if input.Layout != "" {
		cfg.LayoutPath = input.Layout
		if !filepath.IsAbs(cfg.LayoutPath) {
			cfg.LayoutPath = filepath.Join(cfg.Root, cfg.LayoutPath)
		}
	}
	return cfg, nil
}

func handleGenerateProject(ctx context.Context, req *mcp.CallToolRequest, input projectInput) (*mcp.CallToolResult, generateOutput, error) {
	cfg, err := loadConfig(input)
	if err != nil {
		return nil, generateOutput{}, err
	}
	l, err := cfg.Layout()
	if err != nil {
		return nil, generateOutput{}, err
	}

	g := &pbxproj.Generator{}
	p, _, err := g.Build(l)
	if err != nil {
		return nil, generateOutput{}, err
	}
	if problems := pbxproj.CheckProject(p); len(problems) > 0 {
		return nil, generateOutput{}, fmt.Errorf("%s (%d problems): %w", problems[0], len(problems), pbxproj.ErrInconsistent)
	}
	path := cfg.ManifestPath(l.Name)
	if err := pbxproj.Write(path, p); err != nil {
		return nil, generateOutput{}, err
	}

	return nil, generateOutput{
		Manifest: path,
		Objects:  len(p.Objects),
		Message:  fmt.Sprintf("Wrote %s with %d objects.", path, len(p.Objects)),
	}, nil
}

type verifyOutput struct {
	Passed   bool     `json:"passed"`
	Present  []string `json:"present"`
	Missing  []string `json:"missing"`
	Manifest string   `json:"manifest"`
	Message  string   `json:"message"`
}

func handleVerifyProject(ctx context.Context, req *mcp.CallToolRequest, input projectInput) (*mcp.CallToolResult, verifyOutput, error) {
	cfg, err := loadConfig(input)
	if err != nil {
		return nil, verifyOutput{}, err
	}
	table, app := verify.RequiredFiles, "WordJournal"
	if cfg.LayoutPath != "" {
		l, err := cfg.Layout()
		if err != nil {
			return nil, verifyOutput{}, err
		}
		table, app = verify.FromLayout(l), l.Name
	}

	report := verify.Run(cfg.Root, table, verify.DefaultManifest(app))
	out := verifyOutput{
		Passed:   report.Passed(),
		Present:  []string{},
		Missing:  []string{},
		Manifest: report.ManifestPath,
	}
	for _, e := range report.Entries {
		if e.Present {
			out.Present = append(out.Present, e.RelPath())
		} else {
			out.Missing = append(out.Missing, e.RelPath())
		}
	}
	switch {
	case out.Passed:
		out.Message = "All required files are present."
	case !report.ManifestPresent:
		out.Message = fmt.Sprintf("%d file(s) missing; project file not found: %s", len(out.Missing), report.ManifestPath)
	default:
		out.Message = fmt.Sprintf("%d file(s) missing.", len(out.Missing))
	}
	return nil, out, nil
}

type lintInput struct {
	Path string `json:"path,omitempty" jsonschema:"project.pbxproj to check; defaults to WordJournal.xcodeproj/project.pbxproj in the working directory"`
}

type lintOutput struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Message  string   `json:"message"`
}

func handleLintProject(ctx context.Context, req *mcp.CallToolRequest, input lintInput) (*mcp.CallToolResult, lintOutput, error) {
	path := input.Path
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, lintOutput{}, err
		}
		path = cfg.ManifestPath("WordJournal")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lintOutput{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := pbxproj.Parse(data)
	if err != nil {
		return nil, lintOutput{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	out := lintOutput{Errors: []string{}, Warnings: []string{}}
	for _, p := range pbxproj.Check(doc) {
		if p.Severity == pbxproj.SeverityError {
			out.Errors = append(out.Errors, p.String())
		} else {
			out.Warnings = append(out.Warnings, p.String())
		}
	}
	out.Message = fmt.Sprintf("%s: %d error(s), %d warning(s)", path, len(out.Errors), len(out.Warnings))
	return nil, out, nil
}

type identifiersInput struct {
	Count int `json:"count,omitempty" jsonschema:"number of identifiers to mint, 1 to 1000; defaults to 1"`
}

type identifiersOutput struct {
	Identifiers []string `json:"identifiers"`
}

func handleNewIdentifiers(ctx context.Context, req *mcp.CallToolRequest, input identifiersInput) (*mcp.CallToolResult, identifiersOutput, error) {
	n := input.Count
	if n == 0 {
		n = 1
	}
	if n < 0 || n > maxIdentifiers {
		return nil, identifiersOutput{}, fmt.Errorf("count must be between 1 and %d, got %d", maxIdentifiers, input.Count)
	}

	tbl := pbxid.NewTable(nil)
	out := identifiersOutput{Identifiers: make([]string, 0, n)}
	for i := range n {
		id, err := tbl.Allocate(fmt.Sprintf("id:%d", i))
		if err != nil {
			return nil, identifiersOutput{}, err
		}
		out.Identifiers = append(out.Identifiers, id)
	}
	return nil, out, nil
}
