package domain

import (
	"fmt"
	"strings"
)

// Preprocessor rewrites file content before it joins a corpus. Comment
// stripping lives here so rules stay syntax-agnostic.
type Preprocessor interface {
	Process(content string) string
}

// NoopPreprocessor returns content unchanged.
type NoopPreprocessor struct{}

// Process implements Preprocessor.
func (NoopPreprocessor) Process(content string) string {
	return content
}

// CStyleCommentStripper removes `/* ... */` blocks and `// ...` line tails
// as used by JavaScript, TypeScript, Go and friends. Quoted strings and
// template literals are copied verbatim, so "https://x" survives. Stray
// quotes, such as apostrophes in JSX text, do not shield what follows.
// Newlines inside removed block comments are kept to preserve line numbers.
type CStyleCommentStripper struct{}

// Process implements Preprocessor.
//
//nolint:cyclop // single pass scanner over a small state machine
func (CStyleCommentStripper) Process(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	n := len(content)
	for i := 0; i < n; i++ {
		c := content[i]

		switch {
		case c == '`' || (c == '\'' || c == '"') && opensString(content, i):
			end, _ := skipQuoted(content, i)
			b.WriteString(content[i:end])
			i = end - 1

		case c == '/' && i+1 < n && content[i+1] == '/':
			for i < n && content[i] != '\n' {
				i++
			}

			if i < n {
				b.WriteByte('\n')
			}

		case c == '/' && i+1 < n && content[i+1] == '*':
			i += 2
			for i < n && (content[i] != '*' || i+1 >= n || content[i+1] != '/') {
				if content[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			// land on the closing '/' (or past the end for an unterminated block)
			i++

		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// opensString reports whether the quote at i starts a string literal. A
// quote glued to a word character is an apostrophe in text (JSX `Don't`),
// and a quote with no partner on its line is not a literal either.
func opensString(content string, i int) bool {
	if i > 0 && isWordByte(content[i-1]) {
		return false
	}

	_, closed := skipQuoted(content, i)

	return closed
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// skipQuoted returns the index just past the literal opened at start and
// whether its closing quote was found. Single and double quoted strings
// also end at a newline, matching how an unterminated literal behaves in
// the languages we scan.
func skipQuoted(content string, start int) (int, bool) {
	quote := content[start]

	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		case '\n':
			if quote != '`' {
				return i + 1, false
			}
		}
	}

	return len(content), false
}

// HashCommentStripper removes `# ...` line tails (shell, Python, YAML).
type HashCommentStripper struct{}

// Process implements Preprocessor.
func (HashCommentStripper) Process(content string) string {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if idx := hashCommentStart(line); idx >= 0 {
			lines[i] = line[:idx]
		}
	}

	return strings.Join(lines, "\n")
}

func hashCommentStart(line string) int {
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return i
		}
	}

	return -1
}

// PreprocessorByName resolves the strip_comments value of a corpus.
func PreprocessorByName(name string) (Preprocessor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return NoopPreprocessor{}, nil
	case "c", "js", "ts", "go":
		return CStyleCommentStripper{}, nil
	case "hash", "sh", "py", "yaml":
		return HashCommentStripper{}, nil
	}

	return nil, fmt.Errorf("%w: unknown comment syntax %q", ErrInvalidCorpus, name)
}
