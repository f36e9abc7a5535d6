package pbxproj

import (
	"fmt"
	"sort"
	"strings"
)

// Render produces the manifest text. Sections follow SectionOrder; objects
// keep insertion order within a section.
func Render(p *Project) string {
	var b strings.Builder

	b.WriteString("// !$*UTF8*$!\n")
	b.WriteString("{\n")
	fmt.Fprintf(&b, "\tarchiveVersion = %s;\n", quote(p.ArchiveVersion))
	b.WriteString("\tclasses = {\n\t};\n")
	fmt.Fprintf(&b, "\tobjectVersion = %s;\n", quote(p.ObjectVersion))
	b.WriteString("\tobjects = {\n")

	for _, isa := range sectionsOf(p) {
		objs := p.ByIsa(isa)
		fmt.Fprintf(&b, "\n/* Begin %s section */\n", comment(isa))
		for _, o := range objs {
			writeObject(&b, o)
		}
		fmt.Fprintf(&b, "/* End %s section */\n", comment(isa))
	}

	b.WriteString("\t};\n")
	fmt.Fprintf(&b, "\trootObject = %s;\n", renderRef(p.RootObject))
	b.WriteString("}\n")
	return b.String()
}

// sectionsOf returns the known sections present in p followed by any
// unrecognized kinds, sorted.
func sectionsOf(p *Project) []string {
	present := make(map[string]bool)
	for _, o := range p.Objects {
		present[o.Isa] = true
	}
	var out []string
	for _, isa := range SectionOrder {
		if present[isa] {
			out = append(out, isa)
			delete(present, isa)
		}
	}
	var rest []string
	for isa := range present {
		rest = append(rest, isa)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func writeObject(b *strings.Builder, o *Object) {
	b.WriteString("\t\t")
	b.WriteString(renderRef(Ref{ID: o.ID, Comment: o.Comment}))
	b.WriteString(" = ")

	fields := append([]Field{{Key: "isa", Value: String(o.Isa)}}, o.Fields...)
	if compactIsa[o.Isa] {
		writeInlineDict(b, fields)
		b.WriteString(";\n")
		return
	}
	writeDict(b, fields, 2)
	b.WriteString(";\n")
}

func writeDict(b *strings.Builder, fields []Field, depth int) {
	b.WriteString("{\n")
	for _, f := range fields {
		b.WriteString(tabs(depth + 1))
		writeKey(b, f)
		b.WriteString(" = ")
		writeValue(b, f.Value, depth+1)
		b.WriteString(";\n")
	}
	b.WriteString(tabs(depth))
	b.WriteString("}")
}

func writeList(b *strings.Builder, items List, depth int) {
	b.WriteString("(\n")
	for _, v := range items {
		b.WriteString(tabs(depth + 1))
		writeValue(b, v, depth+1)
		b.WriteString(",\n")
	}
	b.WriteString(tabs(depth))
	b.WriteString(")")
}

func writeValue(b *strings.Builder, v Value, depth int) {
	switch val := v.(type) {
	case String:
		b.WriteString(quote(string(val)))
	case Ref:
		b.WriteString(renderRef(val))
	case List:
		writeList(b, val, depth)
	case Dict:
		writeDict(b, val, depth)
	case nil:
		b.WriteString(`""`)
	}
}

func writeInlineDict(b *strings.Builder, fields []Field) {
	b.WriteString("{")
	for _, f := range fields {
		writeKey(b, f)
		b.WriteString(" = ")
		writeInlineValue(b, f.Value)
		b.WriteString("; ")
	}
	b.WriteString("}")
}

func writeInlineValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case List:
		b.WriteString("(")
		for _, item := range val {
			writeInlineValue(b, item)
			b.WriteString(", ")
		}
		b.WriteString(")")
	case Dict:
		writeInlineDict(b, val)
	default:
		writeValue(b, v, 0)
	}
}

func writeKey(b *strings.Builder, f Field) {
	b.WriteString(quote(f.Key))
	if f.KeyComment != "" {
		fmt.Fprintf(b, " /* %s */", comment(f.KeyComment))
	}
}

func renderRef(r Ref) string {
	if r.Comment == "" {
		return r.ID
	}
	return fmt.Sprintf("%s /* %s */", r.ID, comment(r.Comment))
}

// comment keeps s from closing the surrounding block comment early.
func comment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

func tabs(n int) string {
	return strings.Repeat("\t", n)
}

// quote returns s as a bare word when the grammar allows it, otherwise as a
// double-quoted string.
func quote(s string) string {
	if s != "" && isBareWord(s) && !strings.Contains(s, "//") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isBareByte(s[i]) {
			return false
		}
	}
	return true
}

func isBareByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '$' || c == '/' || c == '.':
		return true
	}
	return false
}
