package symfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// node is an s-expression: an atom or a list.
type node struct {
	line int

	// Atom fields.
	atom   string
	quoted bool

	// list is non-nil for a list, even an empty one.
	list []*node
}

func (n *node) isList() bool { return n.list != nil }

// head returns the keyword of a list such as (pin ...), or "".
func (n *node) head() string {
	if !n.isList() || len(n.list) == 0 || n.list[0].isList() || n.list[0].quoted {
		return ""
	}
	return n.list[0].atom
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenAtom
	tokenString
)

type token struct {
	typ   tokenType
	value string
	line  int
}

// lexer reads tokens one rune at a time. Comments run from ';' to the end
// of the line.
type lexer struct {
	r      *bufio.Reader
	peeked *rune
	line   int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *lexer) read() (rune, error) {
	ch, err := l.peek()
	if err != nil {
		return 0, err
	}
	l.peeked = nil
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

func (l *lexer) next() (token, error) {
	for {
		ch, err := l.peek()
		if errors.Is(err, io.EOF) {
			return token{typ: tokenEOF, line: l.line}, nil
		}
		if err != nil {
			return token{}, err
		}

		switch {
		case unicode.IsSpace(ch):
			l.read()
		case ch == ';':
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
		case ch == '(':
			l.read()
			return token{typ: tokenOpen, value: "(", line: l.line}, nil
		case ch == ')':
			l.read()
			return token{typ: tokenClose, value: ")", line: l.line}, nil
		case ch == '"':
			return l.readString()
		default:
			return l.readAtom()
		}
	}
}

// readString reads a double-quoted string using Go escape rules, the
// same rules strconv.Quote writes. Line breaks inside the quotes are kept.
func (l *lexer) readString() (token, error) {
	line := l.line
	l.read()

	var raw strings.Builder
	raw.WriteByte('"')
	for {
		ch, err := l.read()
		if err != nil {
			return token{}, syntaxError(line, "unterminated string")
		}
		switch ch {
		case '"':
			raw.WriteByte('"')
			value, err := strconv.Unquote(raw.String())
			if err != nil {
				return token{}, syntaxError(line, "invalid string %s", raw.String())
			}
			return token{typ: tokenString, value: value, line: line}, nil
		case '\\':
			next, err := l.read()
			if err != nil {
				return token{}, syntaxError(line, "unterminated string")
			}
			raw.WriteRune(ch)
			raw.WriteRune(next)
		case '\n':
			raw.WriteString(`\n`)
		default:
			raw.WriteRune(ch)
		}
	}
}

func (l *lexer) readAtom() (token, error) {
	line := l.line
	var sb strings.Builder
	for {
		ch, err := l.peek()
		if err != nil {
			break
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' || ch == ';' {
			break
		}
		l.read()
		sb.WriteRune(ch)
	}
	return token{typ: tokenAtom, value: sb.String(), line: line}, nil
}

// parseSexp reads every top-level expression from r.
func parseSexp(r io.Reader) ([]*node, error) {
	lx := newLexer(r)
	var nodes []*node
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return nodes, nil
		}
		n, err := parseNode(lx, tok)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

func parseNode(lx *lexer, tok token) (*node, error) {
	switch tok.typ {
	case tokenAtom:
		return &node{line: tok.line, atom: tok.value}, nil
	case tokenString:
		return &node{line: tok.line, atom: tok.value, quoted: true}, nil
	case tokenClose:
		return nil, syntaxError(tok.line, "unexpected ')'")
	case tokenOpen:
		n := &node{line: tok.line, list: []*node{}}
		for {
			next, err := lx.next()
			if err != nil {
				return nil, err
			}
			switch next.typ {
			case tokenClose:
				return n, nil
			case tokenEOF:
				return nil, syntaxError(tok.line, "unclosed '('")
			}
			child, err := parseNode(lx, next)
			if err != nil {
				return nil, err
			}
			n.list = append(n.list, child)
		}
	default:
		return nil, syntaxError(tok.line, "unexpected end of input")
	}
}

func syntaxError(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
}
