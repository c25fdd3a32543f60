// Package bellande implements parsing and serializing of the Bellande
// format, an indentation-sensitive, line-oriented configuration
// notation.
//
// A document is a sequence of lines. A line is blank, a comment
// (first non-blank character is '#'), a key line, or a list item:
//
//	# a basic document
//	name: example
//	count: 3
//	items:
//	  - 1
//	  - 2
//	  - three
//	nested:
//	  flag: true
//
// Nesting is expressed purely by indentation: a key line with no
// inline value opens a block, and every deeper line belongs to it. A
// line at the same or shallower indent closes the block. Scalars are
// typed at parse time: true/false/null (case-insensitive), base-10
// integers, decimal floats, and strings, with double quotes forcing a
// token to be a string ("42" is the string 42, not the number).
//
// [Parse] and [Serialize] convert between documents and the generic
// [Value] tree; [ParseDocument] and [WriteDocument] do the same
// against a file path. Maps preserve key insertion order, so
// serialization is deterministic and a parse/serialize round trip is
// stable.
//
// Like the builtin json package, bellande can also convert between Go
// types and documents directly:
//
//	type Example struct {
//		Name  string   `bellande:"name"`
//		Count int      `bellande:"count"`
//		Items []string `bellande:"items"`
//	}
//
//	example := Example{}
//	bellande.Unmarshal(data, &example)
//
// If a type implements [encoding.TextMarshaler] and
// [encoding.TextUnmarshaler] those are used to convert scalars,
// otherwise scalars are converted with the [strconv] package.
//
// The grammar has two deliberate asymmetries. List items always carry
// a scalar, so a Map or List nested inside a List can be serialized
// (as a sub-block under a bare '-' line) but not parsed back. And a
// key with no inline value and no child lines always parses as an
// empty List, so an empty Map serializes to a bare "key:" line that
// reads back as List{} ([Unmarshal] accepts that placeholder wherever
// a map is expected). Trees built from non-empty map nesting, lists
// of scalars, and scalars round-trip exactly; strings containing line
// breaks cannot be carried and make [Serialize] return an error.
package bellande
