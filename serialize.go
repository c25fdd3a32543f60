package bellande

import (
	"fmt"
	"os"
	"strings"
)

// Serialize renders root as canonical document text: two-space
// indentation per nesting level, keys in insertion order, scalars in
// their parseScalar-inverse form. The output ends with a newline.
//
// It returns an error for keys the grammar cannot carry (a colon, a
// line break, surrounding whitespace, or a leading '-' or '#') and
// for string values containing a line break.
func Serialize(root *Map) ([]byte, error) {
	section, err := serializeMap(root, "")
	if err != nil {
		return nil, err
	}
	return []byte(section + "\n"), nil
}

// WriteDocument serializes root and writes it to path, replacing any
// existing content. File errors are returned as *fs.PathError.
func WriteDocument(root *Map, path string) error {
	data, err := Serialize(root)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func serializeMap(m *Map, indent string) (string, error) {
	strs := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		if err := checkKey(e.Key); err != nil {
			return "", err
		}
		switch v := e.Value.(type) {
		case *Map:
			section, err := serializeMap(v, indent+"  ")
			if err != nil {
				return "", err
			}
			strs = append(strs, joinSection(indent+e.Key+":", section))
		case List:
			section, err := serializeList(v, indent+"  ")
			if err != nil {
				return "", err
			}
			strs = append(strs, joinSection(indent+e.Key+":", section))
		default:
			if err := checkScalar(e.Value); err != nil {
				return "", err
			}
			strs = append(strs, indent+e.Key+": "+formatScalar(e.Value))
		}
	}
	return strings.Join(strs, "\n"), nil
}

// serializeList renders container items as a bare '-' line with the
// container two columns deeper. The grammar cannot read those back
// (item lines always carry a scalar); scalar items round-trip.
func serializeList(l List, indent string) (string, error) {
	strs := make([]string, 0, len(l))
	for _, item := range l {
		switch v := item.(type) {
		case *Map:
			section, err := serializeMap(v, indent+"  ")
			if err != nil {
				return "", err
			}
			strs = append(strs, joinSection(indent+"-", section))
		case List:
			section, err := serializeList(v, indent+"  ")
			if err != nil {
				return "", err
			}
			strs = append(strs, joinSection(indent+"-", section))
		default:
			if err := checkScalar(item); err != nil {
				return "", err
			}
			strs = append(strs, indent+"- "+formatScalar(item))
		}
	}
	return strings.Join(strs, "\n"), nil
}

// joinSection appends a sub-block to its opening line, leaving the
// line bare when the block is empty (an empty container has no lines
// of its own and parses back as the empty placeholder).
func joinSection(line, section string) string {
	if section == "" {
		return line
	}
	return line + "\n" + section
}

// checkScalar rejects strings the grammar cannot carry: quoting has
// no escapes, so a line break would split the value across lines and
// corrupt it on re-parse.
func checkScalar(v Value) error {
	if s, ok := v.(String); ok && strings.ContainsAny(string(s), "\n\r") {
		return fmt.Errorf("cannot serialize string with line break: %q", string(s))
	}
	return nil
}

func checkKey(key string) error {
	if strings.ContainsAny(key, ":\n\r") ||
		key != strings.TrimSpace(key) ||
		strings.HasPrefix(key, "-") ||
		strings.HasPrefix(key, "#") {
		return fmt.Errorf("cannot serialize key %q", key)
	}
	return nil
}
