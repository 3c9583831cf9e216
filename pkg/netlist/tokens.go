package netlist

import (
	"regexp"
	"strings"
)

// Token is one name=value assignment located in a physical line. Offsets are
// byte positions in that line; [Start, End) covers the whole assignment.
type Token struct {
	Name       string
	Value      string
	Start      int
	ValueStart int
	End        int
}

var assignPattern = regexp.MustCompile(`([A-Za-z_]\w*)\s*=\s*`)

// Tokens locates every name=value assignment in line, left to right. A value
// starting with '{' runs to its matching '}' and may contain spaces; any other
// value runs to the next whitespace.
func Tokens(line string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(line) {
		loc := assignPattern.FindStringSubmatchIndex(line[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		valueStart := pos + loc[1]
		end := valueEnd(line, valueStart)
		if end == valueStart {
			pos = valueStart
			continue
		}
		tokens = append(tokens, Token{
			Name:       line[pos+loc[2] : pos+loc[3]],
			Value:      line[valueStart:end],
			Start:      start,
			ValueStart: valueStart,
			End:        end,
		})
		pos = end
	}
	return tokens
}

func valueEnd(line string, start int) int {
	if start >= len(line) {
		return start
	}
	if line[start] == '{' {
		depth := 0
		for i := start; i < len(line); i++ {
			switch line[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
		return len(line)
	}
	if idx := strings.IndexAny(line[start:], " \t\r\n"); idx >= 0 {
		return start + idx
	}
	return len(line)
}

// ReplaceTokens rebuilds line with the assignments for which repl returns
// ok substituted; all other bytes are kept.
func ReplaceTokens(line string, repl func(Token) (string, bool)) string {
	tokens := Tokens(line)
	if len(tokens) == 0 {
		return line
	}
	var b strings.Builder
	last := 0
	for _, tok := range tokens {
		text, ok := repl(tok)
		if !ok {
			continue
		}
		b.WriteString(line[last:tok.Start])
		b.WriteString(text)
		last = tok.End
	}
	b.WriteString(line[last:])
	return b.String()
}
