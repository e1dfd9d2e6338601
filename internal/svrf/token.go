package svrf

// TokenType identifies a lexical token inside a single statement or
// rule-block body. Structural splitting happens in the segmenter; the
// lexer only sees statement text.
type TokenType int

const (
	TokenIdent TokenType = iota
	TokenNumber
	TokenOp     // run of comparison characters, validated against the closed set later
	TokenAssign // a lone "="
	TokenLBrace
	TokenRBrace
	TokenEOF
)

var tokenNames = [...]string{
	TokenIdent:  "IDENT",
	TokenNumber: "NUMBER",
	TokenOp:     "OP",
	TokenAssign: "ASSIGN",
	TokenLBrace: "LBRACE",
	TokenRBrace: "RBRACE",
	TokenEOF:    "EOF",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "UNKNOWN"
}

// Token is one lexeme with the 1-based source line it started on.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

type lexer struct {
	src  string
	pos  int
	line int
}

// lexStatement tokenizes statement text that begins on startLine.
// Whitespace separates tokens; `//` and `@` both discard the rest of
// their line. Characters outside the statement grammar (punctuation
// from unsupported constructs) are skipped so surrounding tokens still
// come through.
func lexStatement(src string, startLine int) []Token {
	l := &lexer{src: src, line: startLine}
	var tokens []Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func (l *lexer) next() Token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.peek() == '/':
			l.skipLine()
		case c == '@':
			l.skipLine()
		case c == '{':
			l.pos++
			return Token{Type: TokenLBrace, Lexeme: "{", Line: l.line}
		case c == '}':
			l.pos++
			return Token{Type: TokenRBrace, Lexeme: "}", Line: l.line}
		case isCompareChar(c):
			return l.lexOp()
		case isDigit(c) || (c == '.' && isDigit(l.peek())):
			return l.lexNumber()
		case isIdentStart(c):
			return l.lexIdent()
		default:
			// Unsupported punctuation. Dropping it keeps the scan
			// permissive for constructs outside the subset.
			l.pos++
		}
	}
	return Token{Type: TokenEOF, Line: l.line}
}

func (l *lexer) peek() byte {
	if l.pos+1 < len(l.src) {
		return l.src[l.pos+1]
	}
	return 0
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) lexOp() Token {
	start := l.pos
	line := l.line
	for l.pos < len(l.src) && isCompareChar(l.src[l.pos]) {
		l.pos++
	}
	lexeme := l.src[start:l.pos]
	if lexeme == "=" {
		return Token{Type: TokenAssign, Lexeme: lexeme, Line: line}
	}
	return Token{Type: TokenOp, Lexeme: lexeme, Line: line}
}

func (l *lexer) lexNumber() Token {
	start := l.pos
	line := l.line
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	return Token{Type: TokenNumber, Lexeme: l.src[start:l.pos], Line: line}
}

func (l *lexer) lexIdent() Token {
	start := l.pos
	line := l.line
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenIdent, Lexeme: l.src[start:l.pos], Line: line}
}

func isCompareChar(c byte) bool {
	return c == '<' || c == '>' || c == '=' || c == '!'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
