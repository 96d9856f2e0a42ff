package domain

import (
	"strings"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// FileSeparator is placed between file contents in a corpus text.
const FileSeparator = "\n"

// Corpus is the aggregated text a rule is evaluated against, together with
// the files it was built from so matches stay traceable.
type Corpus struct {
	Name  string
	Files []m.SourceFile
	text  string
}

// NewCorpus preprocesses each file and joins the results with FileSeparator.
// A nil preprocessor leaves contents untouched.
func NewCorpus(name string, files []m.SourceFile, pre Preprocessor) Corpus {
	if pre == nil {
		pre = NoopPreprocessor{}
	}

	processed := make([]m.SourceFile, 0, len(files))
	parts := make([]string, 0, len(files))

	for _, file := range files {
		file.Content = pre.Process(file.Content)
		processed = append(processed, file)
		parts = append(parts, file.Content)
	}

	return Corpus{
		Name:  name,
		Files: processed,
		text:  strings.Join(parts, FileSeparator),
	}
}

// TextCorpus wraps a bare string, for callers that already hold the text.
func TextCorpus(text string) Corpus {
	return Corpus{text: text}
}

// Text returns the aggregated corpus text.
func (c Corpus) Text() string {
	return c.text
}

// single narrows the corpus to one of its files.
func (c Corpus) single(file m.SourceFile) Corpus {
	return Corpus{
		Name:  c.Name,
		Files: []m.SourceFile{file},
		text:  file.Content,
	}
}

// Paths lists the short paths of the corpus files in order.
func (c Corpus) Paths() []m.Path {
	paths := make([]m.Path, 0, len(c.Files))
	for _, file := range c.Files {
		paths = append(paths, file.ShortPath)
	}

	return paths
}
