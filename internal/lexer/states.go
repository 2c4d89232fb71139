// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lexer

import (
	"strconv"
	"unicode"
)

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	Int
	BracketOpen
	BracketClose
	Comma
	Dot
	Range
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "end of input"
	case Ident:
		return "name"
	case Int:
		return "number"
	case BracketOpen:
		return "'['"
	case BracketClose:
		return "']'"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case Range:
		return "'..'"
	}
	return "invalid character"
}

func lexInit(l *Lexer) StateFn {
	r := l.Next()
	switch {
	case r == eof:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
		l.Ignore()
	case isIdentStart(r):
		return lexIdent
	case '0' <= r && r <= '9':
		return lexNumber
	case r == '[':
		l.Emit(BracketOpen, "[")
	case r == ']':
		l.Emit(BracketClose, "]")
	case r == ',':
		l.Emit(Comma, ",")
	case r == '.':
		if l.Next() == '.' {
			l.Emit(Range, "..")
			break
		}
		l.Backup()
		l.Emit(Dot, ".")
	default:
		l.Emit(Raw, string(r))
		return lexEOF
	}
	return nil
}

func lexNumber(l *Lexer) StateFn {
	l.AcceptWhile(func(r rune) bool { return '0' <= r && r <= '9' })
	v := l.text()
	n, err := strconv.Atoi(v)
	if err != nil {
		l.Emit(Raw, v)
		return lexEOF
	}
	l.emit(Token{Type: Int, Value: v, Int: n})
	return nil
}

func lexIdent(l *Lexer) StateFn {
	l.AcceptWhile(isIdent)
	l.Emit(Ident, l.text())
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *Lexer) StateFn {
	l.Emit(EOF, "")
	return lexEOF
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// names like "In-0" or "Q#" are valid identifiers.
func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '#'
}
