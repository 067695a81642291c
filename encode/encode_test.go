package encode

import (
	"testing"

	"github.com/creachadair/mds/value"
	"github.com/google/go-cmp/cmp"
)

type name struct {
	First string
	Last  string
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name     string
		got      any
		want     any
		gotType  string
		wantType string
	}{
		{"string", String().Encode("hi"), "hi", String().TypeDef(), "string"},
		{"int", Int().Encode(42), 42, Int().TypeDef(), "number"},
		{"float", Float().Encode(1.5), 1.5, Float().TypeDef(), "number"},
		{"bool", Bool().Encode(true), true, Bool().TypeDef(), "boolean"},
		{"null", Null().Encode(struct{}{}), nil, Null().TypeDef(), "null"},
		{"literal", Literal[int]("auto").Encode(7), "auto", Literal[int]("auto").TypeDef(), `"auto"`},
		{"unknown", Unknown().Encode([]any{1.0}), []any{1.0}, Unknown().TypeDef(), "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.got, tc.want); diff != "" {
				t.Errorf("encoded value mismatch (-got+want):\n%s", diff)
			}
			if tc.gotType != tc.wantType {
				t.Errorf("type = %q, want %q", tc.gotType, tc.wantType)
			}
		})
	}
}

func TestMap(t *testing.T) {
	e := Map(func(n name) string { return n.First + " " + n.Last }, String())
	if got := e.Encode(name{"James", "Kirk"}); got != "James Kirk" {
		t.Errorf("Encode = %v, want %q", got, "James Kirk")
	}
	if got := e.TypeDef(); got != "string" {
		t.Errorf("TypeDef = %q, want %q", got, "string")
	}
}

func TestComposites(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		e := List(Int())
		want := []any{1, 2, 3}
		if diff := cmp.Diff(e.Encode([]int{1, 2, 3}), want); diff != "" {
			t.Errorf("Encode mismatch (-got+want):\n%s", diff)
		}
		if got := e.TypeDef(); got != "number[]" {
			t.Errorf("TypeDef = %q, want %q", got, "number[]")
		}
	})

	t.Run("dict", func(t *testing.T) {
		e := Dict(Bool())
		want := map[string]any{"a": true, "b": false}
		if diff := cmp.Diff(e.Encode(map[string]bool{"a": true, "b": false}), want); diff != "" {
			t.Errorf("Encode mismatch (-got+want):\n%s", diff)
		}
		if got := e.TypeDef(); got != "{ [key: string]: boolean }" {
			t.Errorf("TypeDef = %q, want %q", got, "{ [key: string]: boolean }")
		}
	})

	t.Run("tuple2", func(t *testing.T) {
		e := Tuple2(
			func(n name) string { return n.First }, String(),
			func(n name) string { return n.Last }, String(),
		)
		want := []any{"James", "Kirk"}
		if diff := cmp.Diff(e.Encode(name{"James", "Kirk"}), want); diff != "" {
			t.Errorf("Encode mismatch (-got+want):\n%s", diff)
		}
		if got := e.TypeDef(); got != "[ string, string ]" {
			t.Errorf("TypeDef = %q, want %q", got, "[ string, string ]")
		}
	})
}

func TestObject(t *testing.T) {
	e := Object(
		Required("first", func(n name) string { return n.First }, String()),
		Required("last", func(n name) string { return n.Last }, String()),
	)
	want := map[string]any{"first": "James", "last": "Kirk"}
	if diff := cmp.Diff(e.Encode(name{"James", "Kirk"}), want); diff != "" {
		t.Errorf("Encode mismatch (-got+want):\n%s", diff)
	}
	if got := e.TypeDef(); got != "{ first : string; last : string }" {
		t.Errorf("TypeDef = %q, want %q", got, "{ first : string; last : string }")
	}

	out, err := e.EncodeToString(name{"James", "Kirk"})
	if err != nil {
		t.Fatalf("EncodeToString: %v", err)
	}
	if want := `{"first":"James","last":"Kirk"}`; out != want {
		t.Errorf("EncodeToString = %s, want %s", out, want)
	}
}

type profile struct {
	Name string
	Age  value.Maybe[int]
}

func TestObjectOptionalField(t *testing.T) {
	e := Object(
		Required("name", func(p profile) string { return p.Name }, String()),
		Optional("age", func(p profile) value.Maybe[int] { return p.Age }, Int()),
	)

	if got := e.TypeDef(); got != "{ name : string; age? : number }" {
		t.Errorf("TypeDef = %q, want %q", got, "{ name : string; age? : number }")
	}

	t.Run("absent omits key", func(t *testing.T) {
		got := e.Encode(profile{Name: "Spock"}).(map[string]any)
		if _, ok := got["age"]; ok {
			t.Errorf("absent optional field emitted: %v", got)
		}
	})

	t.Run("present includes key", func(t *testing.T) {
		got := e.Encode(profile{Name: "Spock", Age: value.Just(137)}).(map[string]any)
		if diff := cmp.Diff(got, map[string]any{"name": "Spock", "age": 137}); diff != "" {
			t.Errorf("Encode mismatch (-got+want):\n%s", diff)
		}
	})
}

func TestMaybe(t *testing.T) {
	e := Maybe(Int())
	if got := e.TypeDef(); got != "number | null" {
		t.Errorf("TypeDef = %q, want %q", got, "number | null")
	}
	if got := e.Encode(value.Just(42)); got != 42 {
		t.Errorf("Encode(Just 42) = %v, want bare 42", got)
	}
	if got := e.Encode(value.Absent[int]()); got != nil {
		t.Errorf("Encode(Absent) = %v, want null", got)
	}
}

type shape interface{ area() float64 }

type circle struct{ Radius float64 }

func (c circle) area() float64 { return 3 * c.Radius * c.Radius }

type square struct{ Side float64 }

func (s square) area() float64 { return s.Side * s.Side }

func shapeEncoder() Encoder[shape] {
	b := Union[shape]()
	circ := VariantObject(b, "Circle",
		Required("radius", func(c circle) float64 { return c.Radius }, Float()))
	sq := VariantObject(b, "Square",
		Required("side", func(s square) float64 { return s.Side }, Float()))
	return b.Build(func(v shape) UnionValue {
		switch s := v.(type) {
		case circle:
			return circ.Encode(s)
		case square:
			return sq.Encode(s)
		}
		return UnionValue{}
	})
}

func TestUnionBuilder(t *testing.T) {
	e := shapeEncoder()

	wantType := `{ tag : "Circle"; radius : number } | { tag : "Square"; side : number }`
	if got := e.TypeDef(); got != wantType {
		t.Errorf("TypeDef = %q, want %q", got, wantType)
	}

	got := e.Encode(circle{Radius: 2})
	want := map[string]any{"tag": "Circle", "radius": 2.0}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Encode mismatch (-got+want):\n%s", diff)
	}

	got = e.Encode(square{Side: 3})
	want = map[string]any{"tag": "Square", "side": 3.0}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Encode mismatch (-got+want):\n%s", diff)
	}
}

func TestUnionVariantKinds(t *testing.T) {
	type mode int
	const (
		auto mode = iota
		manual
		off
	)

	b := Union[mode]()
	autoV := VariantLiteral(b, "auto")
	manualV := VariantLiteral(b, "manual")
	offV := Variant0(b, "Off")
	e := b.Build(func(m mode) UnionValue {
		switch m {
		case auto:
			return autoV.Encode()
		case manual:
			return manualV.Encode()
		default:
			return offV.Encode()
		}
	})

	wantType := `"auto" | "manual" | { tag : "Off" }`
	if got := e.TypeDef(); got != wantType {
		t.Errorf("TypeDef = %q, want %q", got, wantType)
	}
	if got := e.Encode(auto); got != "auto" {
		t.Errorf("Encode(auto) = %v, want %q", got, "auto")
	}
	if diff := cmp.Diff(e.Encode(off), map[string]any{"tag": "Off"}); diff != "" {
		t.Errorf("Encode(off) mismatch (-got+want):\n%s", diff)
	}
}

func TestUnionDedup(t *testing.T) {
	// Two variants with the same wire type collapse to one printed
	// union member.
	type either struct {
		left  bool
		value int
	}
	b := Union[either]()
	l := Variant(b, Int())
	r := Variant(b, Int())
	e := b.Build(func(v either) UnionValue {
		if v.left {
			return l.Encode(v.value)
		}
		return r.Encode(v.value)
	})
	if got := e.TypeDef(); got != "number" {
		t.Errorf("TypeDef = %q, want %q", got, "number")
	}
}

func TestUnionBuilderMisuse(t *testing.T) {
	mustPanic := func(t *testing.T, name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		fn()
	}

	t.Run("empty union", func(t *testing.T) {
		b := Union[int]()
		mustPanic(t, "Build with no variants", func() {
			b.Build(func(int) UnionValue { return UnionValue{} })
		})
	})

	t.Run("builder reuse", func(t *testing.T) {
		b := Union[int]()
		v := Variant(b, Int())
		match := func(n int) UnionValue { return v.Encode(n) }
		b.Build(match)
		mustPanic(t, "second Build", func() { b.Build(match) })
	})

	t.Run("register after build", func(t *testing.T) {
		b := Union[int]()
		v := Variant(b, Int())
		b.Build(func(n int) UnionValue { return v.Encode(n) })
		mustPanic(t, "Variant after Build", func() { Variant(b, Float()) })
	})

	t.Run("duplicate tag", func(t *testing.T) {
		b := Union[int]()
		Variant0(b, "A")
		mustPanic(t, "duplicate Variant0 tag", func() { Variant0(b, "A") })
	})

	t.Run("fabricated union value", func(t *testing.T) {
		b := Union[int]()
		Variant(b, Int())
		e := b.Build(func(int) UnionValue { return UnionValue{} })
		mustPanic(t, "Encode with zero UnionValue", func() { e.Encode(1) })
	})
}

func TestLazy(t *testing.T) {
	calls := 0
	e := Lazy(func() Encoder[int] {
		calls++
		return Int()
	})
	if calls != 0 {
		t.Fatalf("thunk ran %d times during construction", calls)
	}
	if got := e.Encode(5); got != 5 {
		t.Errorf("Encode = %v, want 5", got)
	}
	if calls != 1 {
		t.Errorf("thunk ran %d times, want 1", calls)
	}
	if got := e.TypeDef(); got != "unknown" {
		t.Errorf("TypeDef = %q, want %q", got, "unknown")
	}
}
