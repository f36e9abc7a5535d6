package pbxproj

import (
	"fmt"
	"path"

	"github.com/wordjournal/xcproj/internal/layout"
	"github.com/wordjournal/xcproj/internal/pbxid"
	"go.uber.org/zap"
)

const (
	archiveVersion = "1"
	objectVersion  = "56"
)

// Logical names used as allocation keys.
const (
	nameProject          = "project"
	nameTarget           = "target"
	nameProduct          = "product"
	nameMainGroup        = "group.main"
	nameProductsGroup    = "group.products"
	namePhaseSources     = "phase:sources"
	namePhaseFrameworks  = "phase:frameworks"
	namePhaseResources   = "phase:resources"
	nameProjectConfigs   = "configlist:project"
	nameTargetConfigs    = "configlist:target"
	configurationDebug   = "Debug"
	configurationRelease = "Release"
)

var configurations = []string{configurationDebug, configurationRelease}

func groupName(key string) string { return "group:/" + key }
func fileName(relPath string) string { return "file:" + relPath }
func buildFileName(relPath string) string { return "build:" + relPath }
func projectConfigName(c string) string { return "config:project:" + c }
func targetConfigName(c string) string { return "config:target:" + c }

// Generator builds manifests from a layout. The zero value is usable.
type Generator struct {
	// Source mints identifiers; nil uses pbxid.New.
	Source pbxid.Source
	Logger *zap.Logger
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Build allocates every identifier, freezes the table, then emits the
// manifest from that table alone.
func (g *Generator) Build(l *layout.Project) (*Project, *pbxid.Table, error) {
	tbl, err := Allocate(l, g.Source)
	if err != nil {
		return nil, nil, err
	}
	g.logger().Debug("identifiers allocated", zap.Int("count", tbl.Len()))

	p, err := Emit(l, tbl)
	if err != nil {
		return nil, nil, err
	}
	g.logger().Debug("manifest emitted", zap.Int("objects", len(p.Objects)))
	return p, tbl, nil
}

// Allocate enumerates every logical entity of l exactly once and returns the
// frozen name table.
func Allocate(l *layout.Project, src pbxid.Source) (*pbxid.Table, error) {
	tbl := pbxid.NewTable(src)

	names := []string{
		nameProject,
		nameTarget,
		nameProduct,
		nameMainGroup,
		nameProductsGroup,
		groupName(""),
	}
	for _, key := range l.GroupKeys() {
		names = append(names, groupName(key))
	}
	for _, f := range l.Entries() {
		names = append(names, fileName(f.RelPath))
		if phaseOf(l, f) != layout.PhaseNone {
			names = append(names, buildFileName(f.RelPath))
		}
	}
	names = append(names, namePhaseSources, namePhaseFrameworks, namePhaseResources)
	for _, c := range configurations {
		names = append(names, projectConfigName(c), targetConfigName(c))
	}
	names = append(names, nameProjectConfigs, nameTargetConfigs)

	if err := tbl.AllocateAll(names...); err != nil {
		return nil, fmt.Errorf("failed to allocate identifiers: %w", err)
	}
	tbl.Freeze()
	return tbl, nil
}

// phaseOf returns the build phase for f. The target's Info.plist is
// referenced through INFOPLIST_FILE and never copied as a resource.
func phaseOf(l *layout.Project, f layout.File) layout.Phase {
	if l.InfoPlist != "" && f.RelPath == l.InfoPlist {
		return layout.PhaseNone
	}
	return f.Type.Phase
}

// emitter reads identifiers from a frozen table and remembers the first
// lookup failure.
type emitter struct {
	tbl *pbxid.Table
	err error
	out []*Object
}

func (e *emitter) id(name string) string {
	id, err := e.tbl.Lookup(name)
	if err != nil && e.err == nil {
		e.err = err
	}
	return id
}

func (e *emitter) ref(name, comment string) Ref {
	return Ref{ID: e.id(name), Comment: comment}
}

func (e *emitter) add(name, comment, isa string, fields ...Field) {
	e.out = append(e.out, &Object{ID: e.id(name), Comment: comment, Isa: isa, Fields: fields})
}

// Emit renders l into objects using only identifiers already present in tbl.
// A missing entry is reported as pbxid.ErrUnallocated.
func Emit(l *layout.Project, tbl *pbxid.Table) (*Project, error) {
	e := &emitter{tbl: tbl}
	entries := l.Entries()
	product := l.ProductName()

	var sources, resources List
	for _, f := range entries {
		phase := phaseOf(l, f)
		if phase == layout.PhaseNone {
			continue
		}
		comment := fmt.Sprintf("%s in %s", f.Name, phase)
		e.add(buildFileName(f.RelPath), comment, IsaBuildFile,
			Field{Key: "fileRef", Value: e.ref(fileName(f.RelPath), f.Name)})
		r := e.ref(buildFileName(f.RelPath), comment)
		if phase == layout.PhaseSources {
			sources = append(sources, r)
		} else {
			resources = append(resources, r)
		}
	}

	e.add(nameProduct, product, IsaFileReference,
		Field{Key: "explicitFileType", Value: str("wrapper.application")},
		Field{Key: "includeInIndex", Value: str("0")},
		Field{Key: "path", Value: str(product)},
		Field{Key: "sourceTree", Value: str("BUILT_PRODUCTS_DIR")},
	)
	for _, f := range entries {
		e.add(fileName(f.RelPath), f.Name, IsaFileReference,
			Field{Key: "lastKnownFileType", Value: str(f.Type.LastKnown)},
			Field{Key: "path", Value: str(f.Name)},
			Field{Key: "sourceTree", Value: str("<group>")},
		)
	}

	e.add(namePhaseFrameworks, "Frameworks", IsaFrameworksPhase, phaseFields(nil)...)

	e.emitGroups(l, entries)

	targetListComment := fmt.Sprintf("Build configuration list for PBXNativeTarget %q", l.Name)
	projectListComment := fmt.Sprintf("Build configuration list for PBXProject %q", l.Name)

	e.add(nameTarget, l.Name, IsaNativeTarget,
		Field{Key: "buildConfigurationList", Value: e.ref(nameTargetConfigs, targetListComment)},
		Field{Key: "buildPhases", Value: List{
			e.ref(namePhaseSources, "Sources"),
			e.ref(namePhaseFrameworks, "Frameworks"),
			e.ref(namePhaseResources, "Resources"),
		}},
		Field{Key: "buildRules", Value: List{}},
		Field{Key: "dependencies", Value: List{}},
		Field{Key: "name", Value: str(l.Name)},
		Field{Key: "productName", Value: str(l.Name)},
		Field{Key: "productReference", Value: e.ref(nameProduct, product)},
		Field{Key: "productType", Value: str("com.apple.product-type.application")},
	)

	e.add(nameProject, "Project object", IsaProject,
		Field{Key: "attributes", Value: Dict{
			{Key: "BuildIndependentTargetsInParallel", Value: str("1")},
			{Key: "LastSwiftUpdateCheck", Value: str("1500")},
			{Key: "LastUpgradeCheck", Value: str("1500")},
			{Key: "TargetAttributes", Value: Dict{
				{Key: e.id(nameTarget), Value: Dict{
					{Key: "CreatedOnToolsVersion", Value: str("15.0")},
				}},
			}},
		}},
		Field{Key: "buildConfigurationList", Value: e.ref(nameProjectConfigs, projectListComment)},
		Field{Key: "compatibilityVersion", Value: str("Xcode 14.0")},
		Field{Key: "developmentRegion", Value: str("en")},
		Field{Key: "hasScannedForEncodings", Value: str("0")},
		Field{Key: "knownRegions", Value: strs("en", "Base")},
		Field{Key: "mainGroup", Value: e.ref(nameMainGroup, "")},
		Field{Key: "productRefGroup", Value: e.ref(nameProductsGroup, "Products")},
		Field{Key: "projectDirPath", Value: str("")},
		Field{Key: "projectRoot", Value: str("")},
		Field{Key: "targets", Value: List{e.ref(nameTarget, l.Name)}},
	)

	e.add(namePhaseResources, "Resources", IsaResourcesPhase, phaseFields(resources)...)
	e.add(namePhaseSources, "Sources", IsaSourcesPhase, phaseFields(sources)...)

	for _, c := range configurations {
		e.add(projectConfigName(c), c, IsaBuildConfiguration,
			Field{Key: "buildSettings", Value: projectSettings(l, c == configurationDebug)},
			Field{Key: "name", Value: str(c)},
		)
	}
	for _, c := range configurations {
		e.add(targetConfigName(c), c, IsaBuildConfiguration,
			Field{Key: "buildSettings", Value: targetSettings(l)},
			Field{Key: "name", Value: str(c)},
		)
	}

	e.add(nameTargetConfigs, targetListComment, IsaConfigurationList, configListFields(e, targetConfigName)...)
	e.add(nameProjectConfigs, projectListComment, IsaConfigurationList, configListFields(e, projectConfigName)...)

	root := e.ref(nameProject, "Project object")
	if e.err != nil {
		return nil, fmt.Errorf("failed to emit manifest: %w", e.err)
	}
	return &Project{
		ArchiveVersion: archiveVersion,
		ObjectVersion:  objectVersion,
		Objects:        e.out,
		RootObject:     root,
	}, nil
}

func (e *emitter) emitGroups(l *layout.Project, entries []layout.File) {
	rootChildren := make(List, 0)
	for _, f := range entries {
		if f.GroupKey == "" {
			rootChildren = append(rootChildren, e.ref(fileName(f.RelPath), f.Name))
		}
	}
	for _, g := range l.Groups {
		rootChildren = append(rootChildren, e.ref(groupName(path.Clean(g.Path)), g.Name))
	}

	e.add(nameMainGroup, "", IsaGroup,
		Field{Key: "children", Value: List{
			e.ref(groupName(""), l.SourceRoot),
			e.ref(nameProductsGroup, "Products"),
		}},
		Field{Key: "sourceTree", Value: str("<group>")},
	)
	e.add(groupName(""), l.SourceRoot, IsaGroup,
		Field{Key: "children", Value: rootChildren},
		Field{Key: "path", Value: str(l.SourceRoot)},
		Field{Key: "sourceTree", Value: str("<group>")},
	)

	var walk func(prefix string, gs []layout.Group)
	walk = func(prefix string, gs []layout.Group) {
		for _, g := range gs {
			key := path.Join(prefix, g.Path)
			children := make(List, 0, len(g.Files)+len(g.Groups))
			for _, name := range g.Files {
				children = append(children, e.ref(fileName(path.Join(key, name)), name))
			}
			for _, sub := range g.Groups {
				children = append(children, e.ref(groupName(path.Join(key, sub.Path)), sub.Name))
			}
			fields := []Field{{Key: "children", Value: children}}
			if g.Name != g.Path {
				fields = append(fields, Field{Key: "name", Value: str(g.Name)})
			}
			fields = append(fields,
				Field{Key: "path", Value: str(g.Path)},
				Field{Key: "sourceTree", Value: str("<group>")},
			)
			e.add(groupName(key), g.Name, IsaGroup, fields...)
			walk(key, g.Groups)
		}
	}
	walk("", l.Groups)

	e.add(nameProductsGroup, "Products", IsaGroup,
		Field{Key: "children", Value: List{e.ref(nameProduct, l.ProductName())}},
		Field{Key: "name", Value: str("Products")},
		Field{Key: "sourceTree", Value: str("<group>")},
	)
}

func phaseFields(files List) []Field {
	if files == nil {
		files = List{}
	}
	return []Field{
		{Key: "buildActionMask", Value: str("2147483647")},
		{Key: "files", Value: files},
		{Key: "runOnlyForDeploymentPostprocessing", Value: str("0")},
	}
}

func configListFields(e *emitter, name func(string) string) []Field {
	list := make(List, 0, len(configurations))
	for _, c := range configurations {
		list = append(list, e.ref(name(c), c))
	}
	return []Field{
		{Key: "buildConfigurations", Value: list},
		{Key: "defaultConfigurationIsVisible", Value: str("0")},
		{Key: "defaultConfigurationName", Value: str(configurationRelease)},
	}
}
