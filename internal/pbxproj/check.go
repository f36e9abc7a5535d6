package pbxproj

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wordjournal/xcproj/internal/pbxid"
)

// Severity grades a Problem.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Problem is one consistency failure found by Check.
type Problem struct {
	Severity Severity
	ID       string // object the problem was found in, if any
	Field    string
	Line     int
	Message  string
}

func (p Problem) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", p.Severity)
	if p.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", p.Line)
	}
	if p.ID != "" {
		b.WriteString(p.ID)
		if p.Field != "" {
			b.WriteString("." + p.Field)
		}
		b.WriteString(": ")
	}
	b.WriteString(p.Message)
	return b.String()
}

// refKinds lists, per field, the isa values a reference may resolve to.
var refKinds = map[string][]string{
	"fileRef":                {IsaFileReference, "PBXVariantGroup"},
	"children":               {IsaGroup, IsaFileReference, "PBXVariantGroup"},
	"buildPhases":            {IsaSourcesPhase, IsaFrameworksPhase, IsaResourcesPhase, "PBXCopyFilesBuildPhase", "PBXShellScriptBuildPhase"},
	"files":                  {IsaBuildFile},
	"buildConfigurationList": {IsaConfigurationList},
	"buildConfigurations":    {IsaBuildConfiguration},
	"mainGroup":              {IsaGroup},
	"productRefGroup":        {IsaGroup},
	"productReference":       {IsaFileReference},
	"targets":                {IsaNativeTarget},
}

// Errors returns only the error-severity problems.
func Errors(problems []Problem) []Problem {
	var out []Problem
	for _, p := range problems {
		if p.Severity == SeverityError {
			out = append(out, p)
		}
	}
	return out
}

// Check verifies that every identifier referenced in doc is defined by
// exactly one object of a matching kind. Objects nothing refers to are
// reported as warnings.
func Check(doc *Document) []Problem {
	var problems []Problem
	report := func(sev Severity, id, field string, line int, format string, args ...any) {
		problems = append(problems, Problem{
			Severity: sev, ID: id, Field: field, Line: line,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if doc == nil || doc.Root == nil || doc.Root.Lookup("objects") == nil {
		report(SeverityError, "", "", 0, "document has no objects dictionary")
		return problems
	}

	isa := make(map[string]string)
	firstLine := make(map[string]int)
	for _, e := range doc.Objects() {
		if prev, dup := firstLine[e.Key]; dup {
			report(SeverityError, e.Key, "", e.Line, "defined more than once (first at line %d)", prev)
			continue
		}
		firstLine[e.Key] = e.Line
		if !pbxid.Valid(e.Key) {
			report(SeverityWarning, e.Key, "", e.Line, "identifier is not 24 uppercase hex characters")
		}
		if e.Value.Kind != NodeDict {
			report(SeverityError, e.Key, "", e.Line, "object is not a dictionary")
			continue
		}
		kind := e.Value.Lookup("isa")
		if kind == nil || kind.Kind != NodeString {
			report(SeverityError, e.Key, "isa", e.Line, "object has no isa")
			continue
		}
		isa[e.Key] = kind.Str
	}

	referenced := make(map[string]bool)
	resolve := func(owner, field, id string, line int, want []string) {
		referenced[id] = true
		got, ok := isa[id]
		if !ok {
			report(SeverityError, owner, field, line, "reference %s is not defined", id)
			return
		}
		if len(want) > 0 && !contains(want, got) {
			report(SeverityError, owner, field, line, "reference %s is a %s, want %s", id, got, strings.Join(want, " or "))
		}
	}

	root := doc.RootObject()
	if root == "" {
		report(SeverityError, "", "rootObject", 0, "rootObject is missing")
	} else {
		resolve("", "rootObject", root, doc.Root.Lookup("rootObject").Line, []string{IsaProject})
	}

	seen := make(map[string]bool)
	for _, e := range doc.Objects() {
		if seen[e.Key] || e.Value.Kind != NodeDict {
			continue
		}
		seen[e.Key] = true
		for _, f := range e.Value.Entries {
			if f.Key == "isa" {
				continue
			}
			checkValue(e.Key, f.Key, f.Value, refKinds[f.Key], resolve)
		}
		if isa[e.Key] == IsaProject {
			attrs := e.Value.Lookup("attributes").Lookup("TargetAttributes")
			if attrs != nil {
				for _, ta := range attrs.Entries {
					resolve(e.Key, "TargetAttributes", ta.Key, ta.Line, []string{IsaNativeTarget})
				}
			}
		}
	}

	var orphans []string
	for id, kind := range isa {
		if !referenced[id] && kind != IsaProject {
			orphans = append(orphans, id)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return firstLine[orphans[i]] < firstLine[orphans[j]] })
	for _, id := range orphans {
		report(SeverityWarning, id, "", firstLine[id], "%s is never referenced", isa[id])
	}

	return problems
}

// checkValue resolves references inside v. Fields with a known reference
// kind resolve every string they hold; other fields resolve only strings
// shaped like identifiers.
func checkValue(owner, field string, v *Node, want []string, resolve func(owner, field, id string, line int, want []string)) {
	switch v.Kind {
	case NodeString:
		if want != nil || pbxid.Valid(v.Str) {
			resolve(owner, field, v.Str, v.Line, want)
		}
	case NodeList:
		for _, item := range v.Items {
			checkValue(owner, field, item, want, resolve)
		}
	case NodeDict:
		for _, e := range v.Entries {
			if e.Key == "TargetAttributes" {
				continue
			}
			checkValue(owner, field+"."+e.Key, e.Value, refKinds[e.Key], resolve)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
