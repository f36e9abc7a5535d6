// Package pbxproj builds, renders, parses, and checks Xcode project.pbxproj
// manifests.
package pbxproj

// Object kinds, by isa.
const (
	IsaBuildFile          = "PBXBuildFile"
	IsaFileReference      = "PBXFileReference"
	IsaFrameworksPhase    = "PBXFrameworksBuildPhase"
	IsaGroup              = "PBXGroup"
	IsaNativeTarget       = "PBXNativeTarget"
	IsaProject            = "PBXProject"
	IsaResourcesPhase     = "PBXResourcesBuildPhase"
	IsaSourcesPhase       = "PBXSourcesBuildPhase"
	IsaBuildConfiguration = "XCBuildConfiguration"
	IsaConfigurationList  = "XCConfigurationList"
)

// SectionOrder is the order sections appear in a rendered manifest.
var SectionOrder = []string{
	IsaBuildFile,
	IsaFileReference,
	IsaFrameworksPhase,
	IsaGroup,
	IsaNativeTarget,
	IsaProject,
	IsaResourcesPhase,
	IsaSourcesPhase,
	IsaBuildConfiguration,
	IsaConfigurationList,
}

// compactIsa lists kinds rendered on a single line.
var compactIsa = map[string]bool{
	IsaBuildFile:     true,
	IsaFileReference: true,
}

// Value is a manifest value: String, Ref, List, or Dict.
type Value interface {
	isValue()
}

// String is a scalar value.
type String string

// Ref references another object by identifier.
type Ref struct {
	ID      string
	Comment string
}

// List is an ordered, comma-terminated sequence.
type List []Value

// Dict is an ordered set of key/value fields.
type Dict []Field

func (String) isValue() {}
func (Ref) isValue() {}
func (List) isValue() {}
func (Dict) isValue() {}

// Field is one key/value pair.
type Field struct {
	Key string
	// KeyComment annotates the key, used when the key itself is an identifier.
	KeyComment string
	Value      Value
}

// Object is one record in the objects dictionary.
type Object struct {
	ID      string
	Comment string
	Isa     string
	Fields  []Field
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Project is a complete manifest.
type Project struct {
	ArchiveVersion string
	ObjectVersion  string
	Objects        []*Object
	RootObject     Ref
}

// Object returns the object with the given id.
func (p *Project) Object(id string) *Object {
	for _, o := range p.Objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// ByIsa returns the objects of one kind in insertion order.
func (p *Project) ByIsa(isa string) []*Object {
	var out []*Object
	for _, o := range p.Objects {
		if o.Isa == isa {
			out = append(out, o)
		}
	}
	return out
}

func str(s string) String { return String(s) }

func strs(ss ...string) List {
	l := make(List, 0, len(ss))
	for _, s := range ss {
		l = append(l, String(s))
	}
	return l
}
