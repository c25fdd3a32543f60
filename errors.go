package bellande

import "fmt"

// MalformedLineError reports a non-blank, non-comment line that is
// neither a key line nor a list item. Line numbers are 1-based.
type MalformedLineError struct {
	Line    int
	Content string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%d: malformed line: %q", e.Line, e.Content)
}

// UnresolvedPathError reports a line whose indentation places it
// inside a container of the wrong shape: a list item under a map
// block (or at the document root), or a key line under a list block.
// Key is the key owning the open block, empty at the root.
type UnresolvedPathError struct {
	Line int
	Key  string
}

func (e *UnresolvedPathError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%d: list item outside of a list", e.Line)
	}
	return fmt.Sprintf("%d: cannot nest under %q", e.Line, e.Key)
}
