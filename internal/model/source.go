// Package model defines the data structures shared by the verification engine.
package model

// Path represents a file system path.
type Path string

// SourceFile is a discovered file and its full text.
type SourceFile struct {
	ShortPath Path // slash-separated, relative to the project root
	FullPath  Path
	Content   string
}
