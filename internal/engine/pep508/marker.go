package pep508

import (
	"slices"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

// Variables lists every environment marker name a marker may reference.
var Variables = []string{
	"extra",
	"os_name",
	"sys_platform",
	"platform_machine",
	"platform_system",
	"platform_release",
	"platform_version",
	"python_version",
	"implementation_version",
	"python_full_version",
	"implementation_name",
	"platform_python_implementation",
}

// interpreterDefaults fills the markers that describe the interpreter
// implementation rather than the platform.
var interpreterDefaults = map[string]string{
	"implementation_name":            "cpython",
	"platform_python_implementation": "CPython",
}

// Marker is a parsed environment marker expression.
type Marker struct {
	src  string
	root node
	vars []string
}

// ParseMarker parses a PEP 508 marker expression.
func ParseMarker(src string) (*Marker, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, markerError("unexpected trailing input", src, tok.pos)
	}
	m := &Marker{src: strings.TrimSpace(src), root: root}
	m.vars = collectVars(root, nil)
	slices.Sort(m.vars)
	m.vars = slices.Compact(m.vars)
	return m, nil
}

// String returns the marker source text.
func (m *Marker) String() string {
	return m.src
}

// References returns the sorted set of variables the marker reads.
func (m *Marker) References() []string {
	return m.vars
}

// Mentions reports whether the marker reads any of the given variables.
func (m *Marker) Mentions(names ...string) bool {
	for _, n := range names {
		if _, ok := slices.BinarySearch(m.vars, n); ok {
			return true
		}
	}
	return false
}

// Evaluate evaluates the marker against env. Interpreter implementation
// markers default to CPython when env does not define them.
func (m *Marker) Evaluate(env map[string]string) (bool, error) {
	return m.root.eval(func(name string) (string, bool) {
		if v, ok := env[name]; ok {
			return v, true
		}
		v, ok := interpreterDefaults[name]
		return v, ok
	})
}

type lookupFunc func(name string) (string, bool)

type node interface {
	eval(lookup lookupFunc) (bool, error)
}

type orNode struct{ terms []node }

func (n orNode) eval(lookup lookupFunc) (bool, error) {
	for _, t := range n.terms {
		ok, err := t.eval(lookup)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type andNode struct{ terms []node }

func (n andNode) eval(lookup lookupFunc) (bool, error) {
	for _, t := range n.terms {
		ok, err := t.eval(lookup)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

type operand struct {
	variable bool
	value    string
}

type compareNode struct {
	lhs, rhs operand
	op       string
}

func (n compareNode) eval(lookup lookupFunc) (bool, error) {
	var key string
	lhs, rhs := n.lhs.value, n.rhs.value
	if n.lhs.variable {
		key = n.lhs.value
		v, ok := lookup(key)
		if !ok {
			return false, zerr.With(zerr.New("undefined environment name"), "name", key)
		}
		lhs = v
	}
	if n.rhs.variable {
		if key == "" {
			key = n.rhs.value
		}
		v, ok := lookup(n.rhs.value)
		if !ok {
			return false, zerr.With(zerr.New("undefined environment name"), "name", n.rhs.value)
		}
		rhs = v
	}
	if key == "extra" {
		lhs, rhs = domain.CanonicalName(lhs), domain.CanonicalName(rhs)
	}
	return compare(lhs, n.op, rhs)
}

// compare applies op the way PEP 508 does: as a version specifier when the
// right-hand side forms a valid one, otherwise as a string operation.
func compare(lhs, op, rhs string) (bool, error) {
	switch op {
	case "in":
		return strings.Contains(rhs, lhs), nil
	case "not in":
		return !strings.Contains(rhs, lhs), nil
	case "===":
		return lhs == rhs, nil
	}

	if spec, err := pep440.NewSpecifiers(op+rhs, pep440.WithPreRelease(true)); err == nil {
		if v, err := pep440.Parse(lhs); err == nil {
			return spec.Check(v), nil
		}
	}

	switch op {
	case "==":
		return lhs == rhs, nil
	case "!=":
		return lhs != rhs, nil
	case "<":
		return lhs < rhs, nil
	case "<=":
		return lhs <= rhs, nil
	case ">":
		return lhs > rhs, nil
	case ">=":
		return lhs >= rhs, nil
	}
	err := zerr.With(domain.ErrUndefinedComparison, "lhs", lhs)
	err = zerr.With(err, "op", op)
	return false, zerr.With(err, "rhs", rhs)
}

func collectVars(n node, acc []string) []string {
	switch n := n.(type) {
	case orNode:
		for _, t := range n.terms {
			acc = collectVars(t, acc)
		}
	case andNode:
		for _, t := range n.terms {
			acc = collectVars(t, acc)
		}
	case compareNode:
		if n.lhs.variable {
			acc = append(acc, n.lhs.value)
		}
		if n.rhs.variable {
			acc = append(acc, n.rhs.value)
		}
	}
	return acc
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isKeyword(word string) bool {
	tok := p.peek()
	return tok.kind == tokIdent && tok.text == word
}

// parseOr := parseAnd ("or" parseAnd)*
func (p *parser) parseOr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []node{first}
	for p.isKeyword("or") {
		p.next()
		t, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return orNode{terms: terms}, nil
}

// parseAnd := parseAtom ("and" parseAtom)*
func (p *parser) parseAnd() (node, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	terms := []node{first}
	for p.isKeyword("and") {
		p.next()
		t, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return andNode{terms: terms}, nil
}

// parseAtom := "(" parseOr ")" | operand op operand
func (p *parser) parseAtom() (node, error) {
	if p.peek().kind == tokLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if tok := p.next(); tok.kind != tokRParen {
			return nil, markerError("expected ')'", p.src, tok.pos)
		}
		return inner, nil
	}

	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	rhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if !lhs.variable && !rhs.variable {
		return nil, markerError("comparison needs an environment variable", p.src, p.peek().pos)
	}
	return compareNode{lhs: lhs, op: op, rhs: rhs}, nil
}

func (p *parser) parseOperand() (operand, error) {
	tok := p.next()
	switch tok.kind {
	case tokString:
		return operand{value: tok.text}, nil
	case tokIdent:
		if !slices.Contains(Variables, tok.text) {
			return operand{}, markerError("unknown variable "+tok.text, p.src, tok.pos)
		}
		return operand{variable: true, value: tok.text}, nil
	default:
		return operand{}, markerError("expected a variable or a string", p.src, tok.pos)
	}
}

func (p *parser) parseOp() (string, error) {
	tok := p.next()
	switch {
	case tok.kind == tokOp:
		return tok.text, nil
	case tok.kind == tokIdent && tok.text == "in":
		return "in", nil
	case tok.kind == tokIdent && tok.text == "not":
		if !p.isKeyword("in") {
			return "", markerError("expected 'in' after 'not'", p.src, p.peek().pos)
		}
		p.next()
		return "not in", nil
	default:
		return "", markerError("expected a comparison operator", p.src, tok.pos)
	}
}
