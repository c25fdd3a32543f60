package bellande_test

import (
	"reflect"
	"testing"
	"time"

	bellande "github.com/RonaldsonBellande/bellande-format"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	five := 5

	for _, test := range []struct {
		name string
		in   any
		out  string
	}{
		{
			name: "map",
			in: map[string]any{
				"b": 2,
				"a": 1,
			},
			out: "a: 1\nb: 2\n",
		},
		{
			name: "nested map sorted",
			in:   map[string]map[string]int{"m": {"b": 2, "a": 1}},
			out:  "m:\n  a: 1\n  b: 2\n",
		},
		{
			name: "int keys",
			in:   map[int]string{2: "b", 1: "a"},
			out:  "1: a\n2: b\n",
		},
		{
			name: "slices",
			in: map[string]any{
				"list": []string{"x", "y"},
			},
			out: "list:\n  - x\n  - y\n",
		},
		{
			name: "struct",
			in: struct {
				A int    `bellande:"a"`
				B bool   `bellande:"b,omitempty"`
				D []int  `bellande:"-"`
				E string `json:"e"`
				F []byte
				G struct {
					H string `bellande:"h"`
				} `bellande:"g"`
			}{
				A: 1,
				E: "x",
				F: []byte{1, 2, 3},
			},
			out: "a: 1\ne: x\nF: AQID\ng:\n  h: \"\"\n",
		},
		{
			name: "pointers",
			in: struct {
				P *int
				Q *int
			}{P: &five},
			out: "P: 5\nQ: null\n",
		},
		{
			name: "text marshaler",
			in: map[string]any{
				"ts": time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
			},
			out: "ts: \"2020-01-02T03:04:05Z\"\n",
		},
		{
			name: "scalars needing quotes",
			in: map[string]string{
				"n": "42",
				"t": "true",
				"s": "two words",
			},
			out: "n: \"42\"\ns: \"two words\"\nt: \"true\"\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			out, err := bellande.Marshal(test.in)
			require.NoError(t, err)
			require.Equal(t, test.out, string(out))
		})
	}
}

func TestMarshalErrors(t *testing.T) {
	_, err := bellande.Marshal([]int{1, 2})
	require.Error(t, err, "top-level value must be a map")

	_, err = bellande.Marshal("scalar")
	require.Error(t, err)

	_, err = bellande.Marshal(map[string]any{"c": make(chan int)})
	require.Error(t, err)

	_, err = bellande.Marshal(map[string]any{"bad:key": 1})
	require.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	type Nested struct {
		Enabled bool `bellande:"enabled"`
	}
	type Config struct {
		Name      string `bellande:"name"`
		Count     int    `bellande:"count"`
		SomeField string
		Tags      []string `json:"tags"`
		TLS       Nested   `bellande:"tls"`
	}

	doc := "name: example\ncount: 3\nsome_field: hi\ntags:\n  - a\n  - b\ntls:\n  enabled: true\n"
	var config Config
	require.NoError(t, bellande.Unmarshal([]byte(doc), &config))
	require.Equal(t, Config{
		Name:      "example",
		Count:     3,
		SomeField: "hi",
		Tags:      []string{"a", "b"},
		TLS:       Nested{Enabled: true},
	}, config)
}

func TestUnmarshalInterface(t *testing.T) {
	var out any
	doc := "a: 1\nf: 0.5\nlist:\n  - x\n  - null\nnested:\n  b: true\n"
	require.NoError(t, bellande.Unmarshal([]byte(doc), &out))
	require.Equal(t, map[string]any{
		"a":      int64(1),
		"f":      0.5,
		"list":   []any{"x", nil},
		"nested": map[string]any{"b": true},
	}, out)
}

func TestUnmarshalScalarConversions(t *testing.T) {
	var quoted struct {
		N int     `bellande:"n"`
		B bool    `bellande:"b"`
		F float64 `bellande:"f"`
	}
	// quoted tokens are strings in the tree but still convert
	require.NoError(t, bellande.Unmarshal([]byte("n: \"42\"\nb: \"true\"\nf: 3\n"), &quoted))
	require.Equal(t, 42, quoted.N)
	require.Equal(t, true, quoted.B)
	require.Equal(t, 3.0, quoted.F)

	var bytes struct {
		Data []byte `bellande:"data"`
	}
	require.NoError(t, bellande.Unmarshal([]byte("data: AQID\n"), &bytes))
	require.Equal(t, []byte{1, 2, 3}, bytes.Data)

	var stamped struct {
		TS time.Time `bellande:"ts"`
	}
	require.NoError(t, bellande.Unmarshal([]byte("ts: \"2020-01-02T03:04:05Z\"\n"), &stamped))
	require.Equal(t, time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), stamped.TS)

	var pointered struct {
		P *int `bellande:"p"`
		Q *int `bellande:"q"`
	}
	require.NoError(t, bellande.Unmarshal([]byte("p: 5\nq: null\n"), &pointered))
	require.NotNil(t, pointered.P)
	require.Equal(t, 5, *pointered.P)
	require.Nil(t, pointered.Q)

	var arrayed struct {
		A [2]int `bellande:"a"`
	}
	require.NoError(t, bellande.Unmarshal([]byte("a:\n  - 1\n  - 2\n"), &arrayed))
	require.Equal(t, [2]int{1, 2}, arrayed.A)
}

func TestUnmarshalErrors(t *testing.T) {
	var config struct {
		N int8 `bellande:"n"`
	}
	require.Error(t, bellande.Unmarshal([]byte("n: 300\n"), &config), "overflow")
	require.Error(t, bellande.Unmarshal([]byte("unknown: 1\n"), &config))
	require.Error(t, bellande.Unmarshal([]byte("n: hello\n"), &config))
	require.Error(t, bellande.Unmarshal([]byte("n: 1\n"), config), "non-pointer target")

	var arrayed struct {
		A [1]int `bellande:"a"`
	}
	require.Error(t, bellande.Unmarshal([]byte("a:\n  - 1\n  - 2\n"), &arrayed), "too many elements")
}

func TestUnmarshalEmptyBlock(t *testing.T) {
	type Empty struct{}
	type Config struct {
		Nested Empty          `bellande:"nested"`
		Lookup map[string]int `bellande:"lookup"`
	}

	in := Config{Lookup: map[string]int{}}
	data, err := bellande.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, "nested:\nlookup:\n", string(data))

	// empty blocks parse as the empty List placeholder; reading one
	// back into a struct or map target must round-trip
	var out Config
	require.NoError(t, bellande.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestMarshalRoundTrip(t *testing.T) {
	type Inner struct {
		Label  string  `bellande:"label"`
		Weight float64 `bellande:"weight"`
	}
	type Outer struct {
		Name    string         `bellande:"name"`
		Count   int            `bellande:"count"`
		Tags    []string       `bellande:"tags"`
		Lookup  map[string]int `bellande:"lookup"`
		Nested  Inner          `bellande:"nested"`
		Skipped string         `bellande:"-"`
	}

	in := Outer{
		Name:   "round trip",
		Count:  -3,
		Tags:   []string{"x", "y z", "42"},
		Lookup: map[string]int{"a": 1, "b": 2},
		Nested: Inner{Label: "inner", Weight: 0.25},
	}

	data, err := bellande.Marshal(in)
	require.NoError(t, err)

	var out Outer
	require.NoError(t, bellande.Unmarshal(data, &out))
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip changed the value:\nin:  %#v\nout: %#v\ndocument:\n%s", in, out, data)
	}
}
