package domain

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxSnippet = 60

// Predicate is a pure boolean test over a corpus. The detail string says
// why it held or did not, naming the file responsible where one exists.
type Predicate interface {
	Holds(c Corpus) (bool, string)
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(c Corpus) (bool, string)

// Holds implements Predicate.
func (f PredicateFunc) Holds(c Corpus) (bool, string) {
	return f(c)
}

// Match holds when the pattern matches the corpus text. A malformed
// pattern is reported here, at construction time.
func Match(pattern string) (Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidRule, pattern, err)
	}

	return MatchRegexp(re), nil
}

// MustMatch is like Match but panics on a malformed pattern. For rules
// declared in Go source.
func MustMatch(pattern string) Predicate {
	p, err := Match(pattern)
	if err != nil {
		panic(err)
	}

	return p
}

// MatchRegexp holds when re matches the corpus text.
func MatchRegexp(re *regexp.Regexp) Predicate {
	return PredicateFunc(func(c Corpus) (bool, string) {
		loc := re.FindStringIndex(c.Text())
		if loc == nil {
			return false, fmt.Sprintf("no match for /%s/", re)
		}

		for _, file := range c.Files {
			if at := re.FindStringIndex(file.Content); at != nil {
				return true, fmt.Sprintf("matched in %s: %q", file.ShortPath, snippet(file.Content[at[0]:at[1]]))
			}
		}

		return true, fmt.Sprintf("matched %q", snippet(c.Text()[loc[0]:loc[1]]))
	})
}

// Contains holds when the corpus text includes s verbatim.
func Contains(s string) Predicate {
	return PredicateFunc(func(c Corpus) (bool, string) {
		if !strings.Contains(c.Text(), s) {
			return false, fmt.Sprintf("no occurrence of %q", s)
		}

		for _, file := range c.Files {
			if strings.Contains(file.Content, s) {
				return true, fmt.Sprintf("found %q in %s", s, file.ShortPath)
			}
		}

		return true, fmt.Sprintf("found %q", s)
	})
}

// HasFile holds when a corpus file's short path matches the glob, using
// path.Match syntax.
func HasFile(glob string) (Predicate, error) {
	if _, err := path.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("%w: file pattern %q: %w", ErrInvalidRule, glob, err)
	}

	return PredicateFunc(func(c Corpus) (bool, string) {
		for _, file := range c.Files {
			if ok, _ := path.Match(glob, string(file.ShortPath)); ok {
				return true, fmt.Sprintf("found %s", file.ShortPath)
			}
		}

		return false, fmt.Sprintf("no file matches %s", glob)
	}), nil
}

// AllOf holds when every predicate holds.
func AllOf(preds ...Predicate) Predicate {
	return PredicateFunc(func(c Corpus) (bool, string) {
		details := make([]string, 0, len(preds))

		for _, p := range preds {
			ok, detail := p.Holds(c)
			if !ok {
				return false, detail
			}

			details = append(details, detail)
		}

		return true, strings.Join(details, "; ")
	})
}

// AnyOf holds when at least one predicate holds.
func AnyOf(preds ...Predicate) Predicate {
	return PredicateFunc(func(c Corpus) (bool, string) {
		details := make([]string, 0, len(preds))

		for _, p := range preds {
			ok, detail := p.Holds(c)
			if ok {
				return true, detail
			}

			details = append(details, detail)
		}

		return false, strings.Join(details, "; ")
	})
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return PredicateFunc(func(c Corpus) (bool, string) {
		ok, detail := p.Holds(c)
		return !ok, detail
	})
}

// InSameFile holds when one file of the corpus satisfies p on its own.
func InSameFile(p Predicate) Predicate {
	return PredicateFunc(func(c Corpus) (bool, string) {
		for _, file := range c.Files {
			if ok, detail := p.Holds(c.single(file)); ok {
				return true, detail
			}
		}

		return false, fmt.Sprintf("no single file of %d satisfies the condition", len(c.Files))
	})
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxSnippet {
		cut := maxSnippet
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}

		return s[:cut] + "…"
	}

	return s
}
