package pbxproj

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("pbxproj syntax error")

// NodeKind identifies the shape of a parsed value.
type NodeKind int

const (
	NodeString NodeKind = iota
	NodeList
	NodeDict
)

// Node is a parsed value. Dict entries keep source order, duplicates included.
type Node struct {
	Kind    NodeKind
	Str     string
	Items   []*Node
	Entries []Entry
	Line    int
}

// Entry is one key/value pair of a parsed dictionary.
type Entry struct {
	Key   string
	Value *Node
	Line  int
}

// Lookup returns the first value stored under key in a dict node.
func (n *Node) Lookup(key string) *Node {
	if n == nil || n.Kind != NodeDict {
		return nil
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Document is a parsed manifest.
type Document struct {
	Root *Node
}

// Objects returns the entries of the top-level objects dictionary.
func (d *Document) Objects() []Entry {
	objs := d.Root.Lookup("objects")
	if objs == nil || objs.Kind != NodeDict {
		return nil
	}
	return objs.Entries
}

// RootObject returns the rootObject identifier, or "".
func (d *Document) RootObject() string {
	n := d.Root.Lookup("rootObject")
	if n == nil || n.Kind != NodeString {
		return ""
	}
	return n.Str
}

// Parse reads the OpenStep-style property list used by project.pbxproj.
// Comments are discarded. Unbalanced braces or parentheses are reported
// with the line where parsing stopped.
func Parse(data []byte) (*Document, error) {
	p := &parser{lex: lexer{src: string(data), line: 1}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokLBrace {
		return nil, p.errorf("expected '{' at start of document, got %s", p.tok)
	}
	root, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after document end", p.tok)
	}
	return &Document{Root: root}, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokEquals
	tokSemi
	tokComma
	tokString
)

type token struct {
	kind tokKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return fmt.Sprintf("%q", t.text)
	default:
		return "'" + t.text + "'"
	}
}

var punctuation = map[byte]tokKind{
	'{': tokLBrace, '}': tokRBrace, '(': tokLParen, ')': tokRParen,
	'=': tokEquals, ';': tokSemi, ',': tokComma,
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) skip() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case strings.HasPrefix(l.src[l.pos:], "//"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			start := l.line
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				return fmt.Errorf("line %d: unterminated comment: %w", start, ErrSyntax)
			}
			body := l.src[l.pos : l.pos+2+end+2]
			l.line += strings.Count(body, "\n")
			l.pos += len(body)
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token, error) {
	if err := l.skip(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}
	c := l.src[l.pos]
	if k, ok := punctuation[c]; ok {
		l.pos++
		return token{kind: k, text: string(c), line: l.line}, nil
	}
	if c == '"' {
		return l.quoted()
	}
	start := l.pos
	for l.pos < len(l.src) && isWordByte(l.src[l.pos]) {
		if strings.HasPrefix(l.src[l.pos:], "//") || strings.HasPrefix(l.src[l.pos:], "/*") {
			break
		}
		l.pos++
	}
	if l.pos == start {
		return token{}, fmt.Errorf("line %d: unexpected character %q: %w", l.line, c, ErrSyntax)
	}
	return token{kind: tokString, text: l.src[start:l.pos], line: l.line}, nil
}

func (l *lexer) quoted() (token, error) {
	line := l.line
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: b.String(), line: line}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, fmt.Errorf("line %d: unterminated string: %w", line, ErrSyntax)
			}
			l.pos++
			switch esc := l.src[l.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
		case '\n':
			l.line++
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
		l.pos++
	}
	return token{}, fmt.Errorf("line %d: unterminated string: %w", line, ErrSyntax)
}

func isWordByte(c byte) bool {
	switch c {
	case '{', '}', '(', ')', '=', ';', ',', '"', ' ', '\t', '\r', '\n':
		return false
	}
	return true
}

// maxDepth bounds the nesting of dictionaries and lists.
const maxDepth = 256

type parser struct {
	lex   lexer
	tok   token
	depth int
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", p.tok.line, fmt.Sprintf(format, args...), ErrSyntax)
}

func (p *parser) expect(k tokKind, what string) error {
	if p.tok.kind != k {
		return p.errorf("expected %s, got %s", what, p.tok)
	}
	return p.advance()
}

func (p *parser) value() (*Node, error) {
	switch p.tok.kind {
	case tokString:
		n := &Node{Kind: NodeString, Str: p.tok.text, Line: p.tok.line}
		return n, p.advance()
	case tokLBrace, tokLParen:
		if p.depth >= maxDepth {
			return nil, p.errorf("nesting deeper than %d levels", maxDepth)
		}
		p.depth++
		defer func() { p.depth-- }()
		if p.tok.kind == tokLBrace {
			return p.dict()
		}
		return p.list()
	default:
		return nil, p.errorf("expected value, got %s", p.tok)
	}
}

func (p *parser) dict() (*Node, error) {
	n := &Node{Kind: NodeDict, Line: p.tok.line}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.kind != tokRBrace {
		if p.tok.kind != tokString {
			return nil, p.errorf("expected key or '}', got %s", p.tok)
		}
		entry := Entry{Key: p.tok.text, Line: p.tok.line}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokEquals, "'='"); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		entry.Value = v
		n.Entries = append(n.Entries, entry)
		if err := p.expect(tokSemi, "';'"); err != nil {
			return nil, err
		}
	}
	return n, p.advance()
}

func (p *parser) list() (*Node, error) {
	n := &Node{Kind: NodeList, Line: p.tok.line}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.kind != tokRParen {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, v)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ',' or ')', got %s", p.tok)
		}
	}
	return n, p.advance()
}
