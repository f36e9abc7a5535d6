// Package layout describes which groups and files make up the generated
// Xcode project, and loads that description from YAML.
package layout

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed wordjournal.yml
var defaultLayout []byte

// Project is the input model for manifest generation.
type Project struct {
	Name             string   `yaml:"name"`
	BundleID         string   `yaml:"bundle_id"`
	DeploymentTarget string   `yaml:"deployment_target"`
	SwiftVersion     string   `yaml:"swift_version"`
	MarketingVersion string   `yaml:"marketing_version"`
	BuildNumber      string   `yaml:"build_number"`
	SourceRoot       string   `yaml:"source_root,omitempty"` // defaults to Name
	InfoPlist        string   `yaml:"info_plist,omitempty"`  // relative to SourceRoot
	Files            []string `yaml:"files,omitempty"`
	Groups           []Group  `yaml:"groups,omitempty"`
}

// Group is a folder-backed group in the project navigator.
type Group struct {
	Name   string   `yaml:"name"`
	Path   string   `yaml:"path,omitempty"` // defaults to Name
	Files  []string `yaml:"files,omitempty"`
	Groups []Group  `yaml:"groups,omitempty"`
}

// File is one flattened file entry.
type File struct {
	Name     string // base name, e.g. JournalView.swift
	RelPath  string // slash path relative to SourceRoot, e.g. Views/JournalView.swift
	GroupKey string // slash path of the owning group, "" for the source root
	Type     FileType
}

// Default returns the built-in WordJournal layout.
func Default() (*Project, error) {
	return Parse(defaultLayout)
}

// Load reads a layout from a YAML file.
func Load(p string) (*Project, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults, and validates a YAML layout.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes the layout back to YAML.
func (p *Project) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func (p *Project) applyDefaults() {
	if p.SourceRoot == "" {
		p.SourceRoot = p.Name
	}
	if p.BundleID == "" && p.Name != "" {
		p.BundleID = "com." + strings.ToLower(p.Name) + ".app"
	}
	if p.DeploymentTarget == "" {
		p.DeploymentTarget = "13.0"
	}
	if p.SwiftVersion == "" {
		p.SwiftVersion = "5.0"
	}
	if p.MarketingVersion == "" {
		p.MarketingVersion = "1.0"
	}
	if p.BuildNumber == "" {
		p.BuildNumber = "1"
	}
	defaultGroupPaths(p.Groups)
}

func defaultGroupPaths(groups []Group) {
	for i := range groups {
		if groups[i].Path == "" {
			groups[i].Path = groups[i].Name
		}
		defaultGroupPaths(groups[i].Groups)
	}
}

// Validate rejects layouts that would produce an inconsistent manifest.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("layout: name is required")
	}
	if strings.ContainsAny(p.Name, "/\"") {
		return fmt.Errorf("layout: invalid app name %q", p.Name)
	}
	seen := make(map[string]bool)
	groupSeen := make(map[string]bool)
	for _, f := range p.Entries() {
		if f.Name == "" || strings.Contains(f.Name, "/") {
			return fmt.Errorf("layout: invalid file name %q in group %q", f.Name, f.GroupKey)
		}
		if seen[f.RelPath] {
			return fmt.Errorf("layout: duplicate file %q", f.RelPath)
		}
		seen[f.RelPath] = true
	}
	var walk func(prefix string, gs []Group) error
	walk = func(prefix string, gs []Group) error {
		for _, g := range gs {
			if g.Name == "" {
				return fmt.Errorf("layout: group under %q has no name", prefix)
			}
			key := path.Join(prefix, g.Path)
			if groupSeen[key] {
				return fmt.Errorf("layout: duplicate group %q", key)
			}
			groupSeen[key] = true
			if err := walk(key, g.Groups); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk("", p.Groups); err != nil {
		return err
	}
	if p.InfoPlist != "" && !seen[p.InfoPlist] {
		return fmt.Errorf("layout: info_plist %q is not listed as a file", p.InfoPlist)
	}
	return nil
}

// Entries flattens the layout into files in navigator order: root files
// first, then each group depth-first.
func (p *Project) Entries() []File {
	var out []File
	for _, name := range p.Files {
		out = append(out, newFile("", name))
	}
	var walk func(prefix string, gs []Group)
	walk = func(prefix string, gs []Group) {
		for _, g := range gs {
			key := path.Join(prefix, g.Path)
			for _, name := range g.Files {
				out = append(out, newFile(key, name))
			}
			walk(key, g.Groups)
		}
	}
	walk("", p.Groups)
	return out
}

// GroupKeys returns the slash path of every group, depth-first.
func (p *Project) GroupKeys() []string {
	var out []string
	var walk func(prefix string, gs []Group)
	walk = func(prefix string, gs []Group) {
		for _, g := range gs {
			key := path.Join(prefix, g.Path)
			out = append(out, key)
			walk(key, g.Groups)
		}
	}
	walk("", p.Groups)
	return out
}

// InfoPlistPath returns the Info.plist path relative to the project
// directory, or "" when the layout has none.
func (p *Project) InfoPlistPath() string {
	if p.InfoPlist == "" {
		return ""
	}
	return path.Join(p.SourceRoot, p.InfoPlist)
}

// ProductName returns the built product file name.
func (p *Project) ProductName() string {
	return p.Name + ".app"
}

func newFile(groupKey, name string) File {
	return File{
		Name:     name,
		RelPath:  path.Join(groupKey, name),
		GroupKey: groupKey,
		Type:     TypeOf(name),
	}
}
