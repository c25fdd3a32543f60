package bellande

import (
	"iter"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var lineRegexp = regexp.MustCompile("\r\n|\r|\n")

// lines iterates over the lines of input with their 1-based line
// numbers, accepting any of the three common line endings.
func lines(input string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lno := 1
		for match := lineRegexp.FindStringIndex(input); match != nil; match = lineRegexp.FindStringIndex(input) {
			if !yield(lno, input[:match[0]]) {
				return
			}
			input = input[match[1]:]
			lno++
		}
		yield(lno, input)
	}
}

type frameType int8

const (
	// a key line with no inline value opens a pending frame; the
	// first child line decides whether it holds a Map or a List
	framePending = frameType(iota)
	frameMap
	frameList
)

// frame is one entry of the scope stack: the block opened by key at
// indent, together with a cursor to the container under construction.
// Map frames write through m immediately; list frames accumulate
// items and are flushed into parent when the block closes, so the
// parent keeps slice ownership simple. stack[0] is the root Map.
type frame struct {
	indent int
	key    string
	typ    frameType
	parent *Map // map that owns key; nil only for the root frame
	m      *Map // set once typ == frameMap
	items  []Value
}

// close materializes the frame's container into its parent. A pending
// frame that never saw a child becomes the empty List placeholder.
func (f *frame) close() {
	switch f.typ {
	case framePending:
		f.parent.Set(f.key, List{})
	case frameList:
		f.parent.Set(f.key, List(f.items))
	}
	// map frames were inserted when their first child arrived
}

// Parse parses a document held in memory and returns its root Map.
//
// The returned error is a *MalformedLineError or an
// *UnresolvedPathError; parsing stops at the first one.
func Parse(data []byte) (*Map, error) {
	root := NewMap()
	stack := []*frame{{typ: frameMap, m: root}}

	for lno, content := range lines(string(data)) {
		stripped := strings.TrimSpace(content)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		rest := strings.TrimLeft(content, " \t")
		leading := content[:len(content)-len(rest)]
		if strings.Contains(leading, " ") && strings.Contains(leading, "\t") {
			return nil, &MalformedLineError{Line: lno, Content: content}
		}
		// indentation is spaces or tabs only; any other leading
		// whitespace would be invisible to the indent count
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			return nil, &MalformedLineError{Line: lno, Content: content}
		}
		indent := len(leading)

		// a line at the same indent as an open block closes it:
		// siblings never share a scope
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack[len(stack)-1].close()
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		if itemText, found := strings.CutPrefix(stripped, "-"); found {
			item := parseScalar(strings.TrimSpace(itemText))
			switch top.typ {
			case framePending:
				top.typ = frameList
				fallthrough
			case frameList:
				top.items = append(top.items, item)
			default:
				return nil, &UnresolvedPathError{Line: lno, Key: top.key}
			}
			continue
		}

		key, valueText, found := strings.Cut(stripped, ":")
		if !found {
			return nil, &MalformedLineError{Line: lno, Content: content}
		}
		key = strings.TrimSpace(key)
		valueText = strings.TrimSpace(valueText)

		switch top.typ {
		case framePending:
			top.typ = frameMap
			top.m = NewMap()
			top.parent.Set(top.key, top.m)
		case frameList:
			return nil, &UnresolvedPathError{Line: lno, Key: top.key}
		}

		if valueText != "" {
			top.m.Set(key, parseScalar(valueText))
		} else {
			stack = append(stack, &frame{indent: indent, key: key, parent: top.m})
		}
	}

	for len(stack) > 1 {
		stack[len(stack)-1].close()
		stack = stack[:len(stack)-1]
	}
	return root, nil
}

// ParseDocument reads the file at path and parses it. File errors are
// returned as *fs.PathError, carrying the path and the OS error.
func ParseDocument(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
