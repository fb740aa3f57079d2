package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ellex-lang/ellex/token"
)

// tok is one lexical token with its source position.
type tok struct {
	kind token.Token
	lit  string
	pos  Pos
}

// lexer turns Ellex source text into a stream of tok values. It never
// panics: malformed input produces an ILLEGAL token that the parser turns
// into a ParseError (spec.md §4.1 "Error contract").
type lexer struct {
	src    string
	offset int // next unread byte, 0-based
	lines  Lines
}

func newLexer(src string) *lexer {
	return &lexer{src: src, lines: Lines{0}}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLower(r) }
func isIdentCont(r rune) bool  { return r == '_' || unicode.IsLower(r) || unicode.IsDigit(r) }

func (l *lexer) peekByte() byte {
	if l.offset >= len(l.src) {
		return 0
	}
	return l.src[l.offset]
}

func (l *lexer) recordLineAt(off int) {
	if off > 0 && l.src[off-1] == '\n' {
		l.lines = append(l.lines, off)
	}
}

// skipSpace skips whitespace and comments, recording line starts.
func (l *lexer) skipSpace() {
	for l.offset < len(l.src) {
		b := l.src[l.offset]
		switch {
		case b == '\n':
			l.offset++
			l.recordLineAt(l.offset)
		case b == ' ' || b == '\t' || b == '\r':
			l.offset++
		case b == '#':
			for l.offset < len(l.src) && l.src[l.offset] != '\n' {
				l.offset++
			}
		default:
			return
		}
	}
}

// next returns the next token in the stream.
func (l *lexer) next() tok {
	l.skipSpace()
	start := l.offset
	pos := Pos(start + 1)
	if l.offset >= len(l.src) {
		return tok{kind: token.EOF, pos: pos}
	}
	b := l.src[l.offset]

	switch b {
	case ',':
		l.offset++
		return tok{kind: token.COMMA, lit: ",", pos: pos}
	case '=':
		l.offset++
		return tok{kind: token.ASSIGN, lit: "=", pos: pos}
	case '[':
		l.offset++
		return tok{kind: token.LBRACK, lit: "[", pos: pos}
	case ']':
		l.offset++
		return tok{kind: token.RBRACK, lit: "]", pos: pos}
	case '"':
		return l.lexString(pos)
	case '@':
		l.offset++
		return l.lexIdentOrNumber(pos, true)
	}

	// UTF-8 arrow "→" used as an alternative ask-binding separator.
	if r, size := utf8.DecodeRuneInString(l.src[l.offset:]); r == '→' {
		l.offset += size
		return tok{kind: token.ARROW, lit: "→", pos: pos}
	}

	if b == '-' || (b >= '0' && b <= '9') {
		if lit, ok := l.tryNumber(); ok {
			return tok{kind: token.NUMBER, lit: lit, pos: pos}
		}
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	if isIdentStart(r) {
		return l.lexIdentOrNumber(pos, false)
	}

	// Unrecognized byte: consume it so the lexer always makes progress,
	// and report it as illegal.
	_, size := utf8.DecodeRuneInString(l.src[l.offset:])
	if size == 0 {
		size = 1
	}
	lit := l.src[l.offset : l.offset+size]
	l.offset += size
	return tok{kind: token.ILLEGAL, lit: lit, pos: pos}
}

func (l *lexer) tryNumber() (string, bool) {
	start := l.offset
	i := l.offset
	if l.src[i] == '-' {
		i++
	}
	digitsStart := i
	for i < len(l.src) && l.src[i] >= '0' && l.src[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return "", false
	}
	if i < len(l.src) && l.src[i] == '.' {
		j := i + 1
		if j < len(l.src) && l.src[j] >= '0' && l.src[j] <= '9' {
			i = j
			for i < len(l.src) && l.src[i] >= '0' && l.src[i] <= '9' {
				i++
			}
		}
	}
	l.offset = i
	return l.src[start:i], true
}

func (l *lexer) lexIdentOrNumber(pos Pos, modal bool) tok {
	start := l.offset
	for l.offset < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.offset:])
		if !isIdentCont(r) {
			break
		}
		l.offset += size
	}
	name := l.src[start:l.offset]
	if name == "" {
		return tok{kind: token.ILLEGAL, lit: "@", pos: pos}
	}
	if modal {
		return tok{kind: token.IDENT, lit: "@" + name, pos: pos}
	}
	return tok{kind: token.Lookup(name), lit: name, pos: pos}
}

// lexString reads a double-quoted string literal, including any "{ident}"
// interpolation placeholders (left unresolved; see spec.md §4.2). There is
// no escape syntax in the core dialect (spec.md §6).
func (l *lexer) lexString(pos Pos) tok {
	start := l.offset
	l.offset++ // opening quote
	var b strings.Builder
	closed := false
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		if c == '"' {
			l.offset++
			closed = true
			break
		}
		if c == '\n' {
			break // unterminated string; stop at line end
		}
		b.WriteByte(c)
		l.offset++
	}
	if !closed {
		return tok{kind: token.ILLEGAL, lit: l.src[start:l.offset], pos: pos}
	}
	return tok{kind: token.STRING, lit: b.String(), pos: pos}
}
