package layout

import (
	"path"
	"strings"
)

// Phase is the build phase a file participates in.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseSources
	PhaseResources
)

func (p Phase) String() string {
	switch p {
	case PhaseSources:
		return "Sources"
	case PhaseResources:
		return "Resources"
	default:
		return "None"
	}
}

// FileType is the declared Xcode file type plus its default build phase.
type FileType struct {
	LastKnown string
	Phase     Phase
}

var fileTypes = map[string]FileType{
	".swift":        {"sourcecode.swift", PhaseSources},
	".m":            {"sourcecode.c.objc", PhaseSources},
	".c":            {"sourcecode.c.c", PhaseSources},
	".h":            {"sourcecode.c.h", PhaseNone},
	".plist":        {"text.plist.xml", PhaseResources},
	".json":         {"text.json", PhaseResources},
	".xcassets":     {"folder.assetcatalog", PhaseResources},
	".strings":      {"text.plist.strings", PhaseResources},
	".gif":          {"image.gif", PhaseResources},
	".png":          {"image.png", PhaseResources},
	".entitlements": {"text.plist.entitlements", PhaseNone},
}

// TypeOf derives the file type from the extension. Unknown extensions are
// plain text copied as resources.
func TypeOf(name string) FileType {
	if ft, ok := fileTypes[strings.ToLower(path.Ext(name))]; ok {
		return ft
	}
	return FileType{LastKnown: "text", Phase: PhaseResources}
}
