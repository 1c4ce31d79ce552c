package scanner

import (
	"unicode"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/cfg"
)

// --- Pre-lexed token streams ------------------------------------------------

// SliceTokenizer is a Tokenizer over a pre-lexed sequence of tokens, as
// produced by an external lexer. After the slice is exhausted it produces
// the end-of-input marker indefinitely.
type SliceTokenizer struct {
	tokens []parsekit.Token
	inx    int
	Error  func(error)
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// FromTokens creates a tokenizer over a pre-lexed token sequence.
func FromTokens(tokens []parsekit.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens, Error: logError}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() parsekit.Token {
	if st.inx >= len(st.tokens) {
		var pos uint64
		if n := len(st.tokens); n > 0 {
			pos = st.tokens[n-1].Span().To()
		}
		return MakeDefaultToken(parsekit.TokType(EOF), "", parsekit.Span{pos, pos})
	}
	t := st.tokens[st.inx]
	st.inx++
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (st *SliceTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		st.Error = logError
		return
	}
	st.Error = h
}

// --- Grammar-driven lexeme splitting -----------------------------------------

// LexemeTokenizer splits an input string into lexemes and maps each lexeme
// to a terminal of a grammar: maximal runs of letters, digits and '_' form
// one lexeme, any other non-space rune stands alone. This matches the
// symbol syntax of the plain-text grammar notation, so toy inputs like
// "id + id * id" tokenize without writing a lexer.
//
// A lexeme with no corresponding terminal is reported to the error handler
// and handed on with its first rune as token value, leaving the rejection
// to the parser.
func LexemeTokenizer(g *cfg.Grammar, input string) *SliceTokenizer {
	st := &SliceTokenizer{Error: logError}
	var word []rune
	var start int
	flush := func(end int) {
		if len(word) > 0 {
			st.tokens = append(st.tokens, st.lexemeToken(g, string(word), start, end))
			word = word[:0]
		}
	}
	for i, r := range input {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if len(word) == 0 {
				start = i
			}
			word = append(word, r)
		default:
			flush(i)
			st.tokens = append(st.tokens,
				st.lexemeToken(g, string(r), i, i+len(string(r))))
		}
	}
	flush(len(input))
	return st
}

func (st *SliceTokenizer) lexemeToken(g *cfg.Grammar, lexeme string, from, to int) parsekit.Token {
	span := parsekit.Span{uint64(from), uint64(to)}
	if sym := g.SymbolByName(lexeme); sym != nil && sym.IsTerminal() {
		return MakeDefaultToken(sym.TokenType(), lexeme, span)
	}
	st.Error(&parsekit.SyntaxError{
		Pos:   uint64(from),
		Found: lexeme,
	})
	return MakeDefaultToken(parsekit.TokType([]rune(lexeme)[0]), lexeme, span)
}
