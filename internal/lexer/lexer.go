// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lexer tokenizes pin list specifications and net shorthand strings.
//
// The lexer is a state machine: each state function consumes some input,
// emits zero or more tokens and returns the next state. A nil state returns
// the lexer to its initial state.
//
package lexer

import "unicode/utf8"

// Type is a token type.
//
type Type int

// Token is a lexical token. Pos is the byte offset of the token in the input.
//
type Token struct {
	Type  Type
	Pos   int
	Value string
	Int   int
}

// StateFn is a lexer state function.
//
type StateFn func(l *Lexer) StateFn

const eof rune = -1

// Lexer splits its input into tokens.
//
type Lexer struct {
	input string
	start int // start of the current token
	pos   int // position of the next rune
	width int // width of the last rune read
	cur   rune
	state StateFn
	items []Token
}

// New returns a new lexer for input.
//
func New(input string) *Lexer {
	return &Lexer{input: input, state: lexInit}
}

// Lex returns the next token. Once the input is exhausted, Lex returns EOF
// tokens indefinitely.
//
func (l *Lexer) Lex() Token {
	for len(l.items) == 0 {
		if l.state = l.state(l); l.state == nil {
			l.state = lexInit
		}
	}
	t := l.items[0]
	l.items = l.items[1:]
	return t
}

// Next reads and returns the next rune, or eof at the end of input.
//
func (l *Lexer) Next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		l.cur = eof
		return eof
	}
	l.cur, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return l.cur
}

// Backup unreads the last rune. It can only be called once per call to Next.
//
func (l *Lexer) Backup() {
	l.pos -= l.width
	l.width = 0
}

// Current returns the last rune read by Next.
//
func (l *Lexer) Current() rune { return l.cur }

// AcceptWhile reads runes for as long as f returns true.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) {
	for f(l.Next()) {
	}
	l.Backup()
}

// Ignore skips the input read since the last emitted token.
//
func (l *Lexer) Ignore() { l.start = l.pos }

// Emit emits a token of type t with the given value, positioned at the start
// of the current token.
//
func (l *Lexer) Emit(t Type, value string) {
	l.emit(Token{Type: t, Value: value})
}

func (l *Lexer) emit(t Token) {
	t.Pos = l.start
	l.items = append(l.items, t)
	l.start = l.pos
}

// text returns the input read since the last emitted token.
func (l *Lexer) text() string { return l.input[l.start:l.pos] }
