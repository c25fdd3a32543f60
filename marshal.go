package bellande

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Marshal converts a Go value to a document.
//
// Struct fields use a `bellande:"name,omitempty"` tag if present,
// then a `json` tag, then the field name. A tag of "-" skips the
// field. Map keys are sorted, since Go maps carry no order of their
// own. []byte values are encoded as base64 strings. Types
// implementing [encoding.TextMarshaler] marshal as strings.
//
// The top-level value must marshal to a map (a struct or a Go map),
// matching the document root. Channels, funcs and complex numbers
// return an error.
func Marshal(v any) ([]byte, error) {
	value, err := marshalValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	root, ok := value.(*Map)
	if !ok {
		return nil, fmt.Errorf("top-level value must be a struct or map, got %s", value.Kind())
	}
	return Serialize(root)
}

func marshalValue(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null{}, nil
	}

	if m, ok := rv.Interface().(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return String(text), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return marshalValue(rv.Elem())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of range: %d", u)
		}
		return Integer(u), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(base64.RawStdEncoding.EncodeToString(rv.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		list := make(List, 0, rv.Len())
		for i := range rv.Len() {
			item, err := marshalValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case reflect.Map:
		return marshalMap(rv)
	case reflect.Struct:
		return marshalStruct(rv)
	default:
		return nil, fmt.Errorf("unsupported type: %s", rv.Type())
	}
}

func marshalMap(rv reflect.Value) (Value, error) {
	type entry struct {
		name string
		key  reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		name, err := marshalKey(key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{name, key})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	m := NewMap()
	for _, e := range entries {
		value, err := marshalValue(rv.MapIndex(e.key))
		if err != nil {
			return nil, err
		}
		m.Set(e.name, value)
	}
	return m, nil
}

func marshalKey(rv reflect.Value) (string, error) {
	if m, ok := rv.Interface().(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			return marshalKey(rv.Elem())
		}
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return fmt.Sprint(rv.Interface()), nil
	}
	return "", fmt.Errorf("unsupported map key type: %s", rv.Type())
}

func marshalStruct(rv reflect.Value) (Value, error) {
	m := NewMap()
	t := rv.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup("bellande")
		if !ok {
			tag, _ = field.Tag.Lookup("json")
		}
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		fv := rv.Field(i)
		if strings.Contains(options, "omitempty") && (!fv.IsValid() || fv.IsZero()) {
			continue
		}
		value, err := marshalValue(fv)
		if err != nil {
			return nil, err
		}
		m.Set(name, value)
	}
	return m, nil
}

// Unmarshal parses data and stores the result in the value pointed to
// by v, which must be a non-nil pointer. It acts similarly to
// json.Unmarshal.
//
// For struct fields, a `bellande:"name"` tag is checked first, then a
// `json:"name"` tag, and finally the field name and its snake_case
// form. A document key matching no field is an error.
//
// When unmarshalling into an interface, maps become map[string]any,
// lists become []any, and scalars take their natural Go type (string,
// int64, float64, bool, or nil).
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	root, err := Parse(data)
	if err != nil {
		return err
	}
	return unmarshalValue(root, rv.Elem())
}

func unmarshalValue(val Value, rv reflect.Value) error {
	if !rv.CanSet() {
		panic(fmt.Errorf("cannot set value of type: %v", rv.Type()))
	}

	if _, ok := val.(Null); ok {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if tu, ok := rv.Addr().Interface().(encoding.TextUnmarshaler); ok {
		text, err := scalarText(val)
		if err != nil {
			return err
		}
		return tu.UnmarshalText([]byte(text))
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalValue(val, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("unsupported type: %v", rv.Type())
		}
		plain := val.Plain()
		if plain == nil {
			rv.Set(reflect.Zero(rv.Type()))
		} else {
			rv.Set(reflect.ValueOf(plain))
		}
		return nil
	case reflect.Struct:
		return unmarshalStruct(val, rv)
	case reflect.Map:
		return unmarshalMap(val, rv)
	case reflect.Slice:
		return unmarshalSlice(val, rv)
	case reflect.Array:
		return unmarshalArray(val, rv)
	default:
		return setScalar(val, rv)
	}
}

func unmarshalStruct(val Value, rv reflect.Value) error {
	m, ok := val.(*Map)
	if !ok {
		// an empty block reads back as the empty List placeholder
		if list, isList := val.(List); isList && len(list) == 0 {
			return nil
		}
		return fmt.Errorf("expected map for %v, got %s", rv.Type(), val.Kind())
	}

	t := rv.Type()
	fieldMap := make(map[string]reflect.Value)
	for i := range t.NumField() {
		field := rv.Field(i)
		fieldType := t.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		if tag, ok := fieldType.Tag.Lookup("bellande"); ok {
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			fieldMap[name] = field
			continue
		}
		if tag, ok := fieldType.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			fieldMap[name] = field
			continue
		}

		fieldMap[fieldType.Name] = field
		fieldMap[toSnakeCase(fieldType.Name)] = field
	}

	for _, e := range m.Entries() {
		field, ok := fieldMap[e.Key]
		if !ok {
			return fmt.Errorf("unknown field %q", e.Key)
		}
		if err := unmarshalValue(e.Value, field); err != nil {
			return err
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

func unmarshalMap(val Value, rv reflect.Value) error {
	m, ok := val.(*Map)
	if !ok {
		// an empty block reads back as the empty List placeholder
		if list, isList := val.(List); isList && len(list) == 0 {
			if rv.IsNil() {
				rv.Set(reflect.MakeMap(rv.Type()))
			}
			return nil
		}
		return fmt.Errorf("expected map for %v, got %s", rv.Type(), val.Kind())
	}

	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(rv.Type(), m.Len()))
	}
	keyType := rv.Type().Key()
	valueType := rv.Type().Elem()

	for _, e := range m.Entries() {
		key := reflect.New(keyType).Elem()
		if err := setScalar(String(e.Key), key); err != nil {
			return fmt.Errorf("invalid key %q: %w", e.Key, err)
		}
		value := reflect.New(valueType).Elem()
		if err := unmarshalValue(e.Value, value); err != nil {
			return err
		}
		rv.SetMapIndex(key, value)
	}
	return nil
}

func unmarshalSlice(val Value, rv reflect.Value) error {
	elemType := rv.Type().Elem()

	if elemType.Kind() == reflect.Uint8 {
		text, err := scalarText(val)
		if err != nil {
			return err
		}
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "")
		output, err := base64.RawStdEncoding.DecodeString(r.Replace(text))
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(output))
		return nil
	}

	list, ok := val.(List)
	if !ok {
		return fmt.Errorf("expected list for %v, got %s", rv.Type(), val.Kind())
	}
	out := reflect.MakeSlice(rv.Type(), len(list), len(list))
	for i, item := range list {
		if err := unmarshalValue(item, out.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func unmarshalArray(val Value, rv reflect.Value) error {
	list, ok := val.(List)
	if !ok {
		return fmt.Errorf("expected list for %v, got %s", rv.Type(), val.Kind())
	}
	if len(list) > rv.Len() {
		return fmt.Errorf("too many elements, limit %d", rv.Len())
	}
	for i, item := range list {
		if err := unmarshalValue(item, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// scalarText renders a scalar as its plain (unquoted) text form for
// TextUnmarshaler targets, string targets and base64 fields.
func scalarText(val Value) (string, error) {
	switch s := val.(type) {
	case String:
		return string(s), nil
	case Integer, Float, Bool, Null:
		return formatScalar(val), nil
	default:
		return "", fmt.Errorf("expected scalar, got %s", val.Kind())
	}
}

func setScalar(val Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		s, err := scalarText(val)
		if err != nil {
			return err
		}
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		switch v := val.(type) {
		case Integer:
			i = int64(v)
		case String:
			parsed, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return err
			}
			i = parsed
		default:
			return fmt.Errorf("expected integer, got %s", val.Kind())
		}
		if rv.OverflowInt(i) {
			return fmt.Errorf("invalid %s: %v", rv.Type(), i)
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var u uint64
		switch v := val.(type) {
		case Integer:
			if v < 0 {
				return fmt.Errorf("invalid %s: %v", rv.Type(), int64(v))
			}
			u = uint64(v)
		case String:
			parsed, err := strconv.ParseUint(string(v), 10, 64)
			if err != nil {
				return err
			}
			u = parsed
		default:
			return fmt.Errorf("expected integer, got %s", val.Kind())
		}
		if rv.OverflowUint(u) {
			return fmt.Errorf("invalid %s: %v", rv.Type(), u)
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		var f float64
		switch v := val.(type) {
		case Float:
			f = float64(v)
		case Integer:
			f = float64(v)
		case String:
			parsed, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return err
			}
			f = parsed
		default:
			return fmt.Errorf("expected number, got %s", val.Kind())
		}
		if rv.OverflowFloat(f) {
			return fmt.Errorf("invalid %s: %v", rv.Type(), f)
		}
		rv.SetFloat(f)
	case reflect.Bool:
		switch v := val.(type) {
		case Bool:
			rv.SetBool(bool(v))
		case String:
			b, err := strconv.ParseBool(string(v))
			if err != nil {
				return err
			}
			rv.SetBool(b)
		default:
			return fmt.Errorf("expected bool, got %s", val.Kind())
		}
	default:
		return fmt.Errorf("unsupported type: %s", rv.Type())
	}
	return nil
}
