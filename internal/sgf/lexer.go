package sgf

import (
	"errors"
	"strings"
)

// parser walks the SGF text collecting the nodes of the main line
type parser struct {
	src string
	pos int
}

// mainLine returns the nodes of the first game tree, following the first
// variation at every branch
func (p *parser) mainLine() ([]node, error) {
	p.skipSpace()
	if !p.consume('(') {
		return nil, errors.New("expected '('")
	}
	var nodes []node
	if err := p.sequence(&nodes, true); err != nil {
		return nil, err
	}
	return nodes, nil
}

// sequence reads nodes and nested trees up to the matching ')'.
// Nodes are only collected while follow is true.
func (p *parser) sequence(nodes *[]node, follow bool) error {
	tookVariation := false
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return errors.New("unexpected end of input")
		}
		switch p.src[p.pos] {
		case ';':
			p.pos++
			n, err := p.node()
			if err != nil {
				return err
			}
			if follow && !tookVariation {
				*nodes = append(*nodes, n)
			}
		case '(':
			p.pos++
			if err := p.sequence(nodes, follow && !tookVariation); err != nil {
				return err
			}
			tookVariation = true
		case ')':
			p.pos++
			return nil
		default:
			return errors.New("unexpected character " + string(p.src[p.pos]))
		}
	}
}

func (p *parser) node() (node, error) {
	n := make(node)
	for {
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
			p.pos++
		}
		if start == p.pos {
			return n, nil
		}
		// FF[3] allowed lowercase letters inside identifiers; keep only the capitals
		ident := keepUpper(p.src[start:p.pos])

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '[' {
			return nil, errors.New("property " + ident + " has no value")
		}
		for {
			p.skipSpace()
			if p.pos >= len(p.src) || p.src[p.pos] != '[' {
				break
			}
			p.pos++
			val, err := p.value()
			if err != nil {
				return nil, err
			}
			n[ident] = append(n[ident], val)
		}
	}
}

// value reads a property value up to the closing ']', resolving escapes
func (p *parser) value() (string, error) {
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '\\':
			p.pos++
			if p.pos < len(p.src) {
				next := p.src[p.pos]
				// Escaped line breaks are soft line breaks and vanish
				if next != '\n' && next != '\r' {
					b.WriteByte(next)
				}
				p.pos++
			}
		case ']':
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", errors.New("unterminated property value")
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isIdentChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func keepUpper(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
