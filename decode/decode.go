// Package decode builds JSON decoders that carry their own
// TypeScript type description.
//
// A [Decoder] pairs a pure decoding function with a [tstype.Type]
// describing the JSON it accepts. Decoding failure is reported as a
// [DecodeError] value carrying the field/index path to the failure
// point; no combinator panics on malformed input.
//
// Decoders consume the generic JSON representation produced by
// encoding/json: nil, bool, string, float64, []any, and
// map[string]any. The numeric combinators also accept int and int64
// so that values produced by the encode package round-trip without a
// serialization pass.
package decode

import (
	"encoding/json"
	"math"

	"github.com/creachadair/mds/value"

	"github.com/danderson/tsjson/tstype"
)

// A Decoder converts JSON values to values of type T. Decoders are
// immutable once built and safe for concurrent use.
type Decoder[T any] struct {
	fn  func(any) (T, error)
	typ tstype.Type
}

// New returns a Decoder from a raw decoding function and the type of
// the JSON it accepts. It is the escape hatch for decodings this
// package's combinators cannot express; fn must accept exactly the
// JSON values conforming to typ.
func New[T any](fn func(any) (T, error), typ tstype.Type) Decoder[T] {
	return Decoder[T]{fn, typ}
}

// Decode decodes a generic JSON value.
func (d Decoder[T]) Decode(v any) (T, error) { return d.fn(v) }

// DecodeString parses JSON text and decodes the result. Parse
// failure and decode failure surface through the same error channel,
// as a DecodeError.
func (d Decoder[T]) DecodeString(s string) (T, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero T
		return zero, decodeErrf("invalid JSON: %v", err)
	}
	return d.fn(v)
}

// Type returns the type of the JSON values the decoder accepts.
func (d Decoder[T]) Type() tstype.Type { return d.typ }

// TypeDef returns the printed TypeScript type of the decoder's
// input.
func (d Decoder[T]) TypeDef() string { return d.typ.String() }

// String decodes a JSON string.
func String() Decoder[string] {
	fn := func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", wrongKind("string", v)
		}
		return s, nil
	}
	return Decoder[string]{fn, tstype.String}
}

// Int decodes a JSON number with an integral value. Values outside
// the int range are a decode failure, not a silent truncation.
func Int() Decoder[int] {
	fn := func(v any) (int, error) {
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return intFromInt64(n)
		case float64:
			if n != math.Trunc(n) {
				return 0, decodeErrf("want integer, got %v", n)
			}
			// float64(math.MaxInt64) rounds up to 2^63, so >= also
			// rejects that boundary, which does not fit in int64.
			if n < math.MinInt64 || n >= math.MaxInt64 {
				return 0, decodeErrf("number %v overflows int", n)
			}
			return intFromInt64(int64(n))
		}
		return 0, wrongKind("number", v)
	}
	return Decoder[int]{fn, tstype.Number}
}

// intFromInt64 guards the narrowing conversion on platforms where int
// is smaller than int64.
func intFromInt64(n int64) (int, error) {
	if int64(int(n)) != n {
		return 0, decodeErrf("number %d overflows int", n)
	}
	return int(n), nil
}

// Float decodes a JSON number.
func Float() Decoder[float64] {
	fn := func(v any) (float64, error) {
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return 0, wrongKind("number", v)
	}
	return Decoder[float64]{fn, tstype.Number}
}

// Bool decodes a JSON boolean.
func Bool() Decoder[bool] {
	fn := func(v any) (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, wrongKind("boolean", v)
		}
		return b, nil
	}
	return Decoder[bool]{fn, tstype.Boolean}
}

// Null decodes JSON null to the fixed result value.
func Null[T any](result T) Decoder[T] {
	fn := func(v any) (T, error) {
		if v != nil {
			var zero T
			return zero, wrongKind("null", v)
		}
		return result, nil
	}
	return Decoder[T]{fn, tstype.Null}
}

// Literal decodes exactly the JSON value lit, yielding the fixed
// result value. Any input that is not JSON-equal to lit is a decode
// failure.
func Literal[T any](result T, lit any) Decoder[T] {
	fn := func(v any) (T, error) {
		if !tstype.JSONEqual(v, lit) {
			var zero T
			return zero, decodeErrf("want literal %s, got %s", tstype.Literal(lit), jsonString(v))
		}
		return result, nil
	}
	return Decoder[T]{fn, tstype.Literal(lit)}
}

// Unknown accepts any JSON value unchanged.
func Unknown() Decoder[any] {
	return Decoder[any]{func(v any) (any, error) { return v, nil }, tstype.Unknown}
}

// Succeed ignores its input and yields v. Its type is unknown, since
// it accepts anything.
func Succeed[T any](v T) Decoder[T] {
	return Decoder[T]{func(any) (T, error) { return v, nil }, tstype.Unknown}
}

// Fail rejects every input with the given message.
func Fail[T any](msg string) Decoder[T] {
	fn := func(any) (T, error) {
		var zero T
		return zero, decodeErrf("%s", msg)
	}
	return Decoder[T]{fn, tstype.Unknown}
}

// Map returns a Decoder for B that decodes with d and transforms the
// result with f. The accepted JSON shape, and therefore the type, is
// d's.
func Map[A, B any](f func(A) B, d Decoder[A]) Decoder[B] {
	fn := func(v any) (B, error) {
		a, err := d.fn(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
	return Decoder[B]{fn, d.typ}
}

// List decodes a JSON array element-wise.
func List[T any](elem Decoder[T]) Decoder[[]T] {
	fn := func(v any) ([]T, error) {
		arr, ok := v.([]any)
		if !ok {
			return nil, wrongKind("array", v)
		}
		out := make([]T, len(arr))
		for i, ev := range arr {
			e, err := elem.fn(ev)
			if err != nil {
				return nil, atIndex(i, err)
			}
			out[i] = e
		}
		return out, nil
	}
	return Decoder[[]T]{fn, tstype.List(elem.typ)}
}

// Dict decodes a JSON object with uniform value type into a map.
func Dict[V any](val Decoder[V]) Decoder[map[string]V] {
	fn := func(v any) (map[string]V, error) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, wrongKind("object", v)
		}
		out := make(map[string]V, len(obj))
		for k, fv := range obj {
			dv, err := val.fn(fv)
			if err != nil {
				return nil, atField(k, err)
			}
			out[k] = dv
		}
		return out, nil
	}
	return Decoder[map[string]V]{fn, tstype.Dict(val.typ)}
}

// Tuple1 decodes a one-element JSON array and applies ctor to the
// decoded element.
func Tuple1[T, A any](ctor func(A) T, a Decoder[A]) Decoder[T] {
	fn := func(v any) (T, error) {
		var zero T
		arr, err := tupleElems(v, 1)
		if err != nil {
			return zero, err
		}
		av, err := a.fn(arr[0])
		if err != nil {
			return zero, atIndex(0, err)
		}
		return ctor(av), nil
	}
	return Decoder[T]{fn, tstype.Tuple(a.typ)}
}

// Tuple2 decodes a two-element JSON array and applies ctor to the
// decoded elements.
func Tuple2[T, A, B any](ctor func(A, B) T, a Decoder[A], b Decoder[B]) Decoder[T] {
	fn := func(v any) (T, error) {
		var zero T
		arr, err := tupleElems(v, 2)
		if err != nil {
			return zero, err
		}
		av, err := a.fn(arr[0])
		if err != nil {
			return zero, atIndex(0, err)
		}
		bv, err := b.fn(arr[1])
		if err != nil {
			return zero, atIndex(1, err)
		}
		return ctor(av, bv), nil
	}
	return Decoder[T]{fn, tstype.Tuple(a.typ, b.typ)}
}

// Tuple3 decodes a three-element JSON array and applies ctor to the
// decoded elements.
func Tuple3[T, A, B, C any](ctor func(A, B, C) T, a Decoder[A], b Decoder[B], c Decoder[C]) Decoder[T] {
	fn := func(v any) (T, error) {
		var zero T
		arr, err := tupleElems(v, 3)
		if err != nil {
			return zero, err
		}
		av, err := a.fn(arr[0])
		if err != nil {
			return zero, atIndex(0, err)
		}
		bv, err := b.fn(arr[1])
		if err != nil {
			return zero, atIndex(1, err)
		}
		cv, err := c.fn(arr[2])
		if err != nil {
			return zero, atIndex(2, err)
		}
		return ctor(av, bv, cv), nil
	}
	return Decoder[T]{fn, tstype.Tuple(a.typ, b.typ, c.typ)}
}

func tupleElems(v any, n int) ([]any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, wrongKind("array", v)
	}
	if len(arr) != n {
		return nil, decodeErrf("want %d-element tuple, got %d elements", n, len(arr))
	}
	return arr, nil
}

// Field decodes the named required field of a JSON object. A missing
// key is a decode failure.
func Field[F any](name string, d Decoder[F]) Decoder[F] {
	fn := func(v any) (F, error) {
		var zero F
		obj, ok := v.(map[string]any)
		if !ok {
			return zero, wrongKind("object", v)
		}
		fv, ok := obj[name]
		if !ok {
			return zero, decodeErrf("missing required field %q", name)
		}
		f, err := d.fn(fv)
		if err != nil {
			return zero, atField(name, err)
		}
		return f, nil
	}
	return Decoder[F]{fn, tstype.Object(tstype.Required(name, d.typ))}
}

// OptionalField decodes the named field of a JSON object, yielding
// an absent value when the key is missing. A present key must decode
// with d; a present null is only accepted if d accepts it.
func OptionalField[F any](name string, d Decoder[F]) Decoder[value.Maybe[F]] {
	fn := func(v any) (value.Maybe[F], error) {
		obj, ok := v.(map[string]any)
		if !ok {
			return value.Absent[F](), wrongKind("object", v)
		}
		fv, ok := obj[name]
		if !ok {
			return value.Absent[F](), nil
		}
		f, err := d.fn(fv)
		if err != nil {
			return value.Absent[F](), atField(name, err)
		}
		return value.Just(f), nil
	}
	return Decoder[value.Maybe[F]]{fn, tstype.Object(tstype.Optional(name, d.typ))}
}

// Nullable decodes JSON null as absent and anything else with d,
// typed as the union of d's type with null.
func Nullable[A any](d Decoder[A]) Decoder[value.Maybe[A]] {
	fn := func(v any) (value.Maybe[A], error) {
		if v == nil {
			return value.Absent[A](), nil
		}
		a, err := d.fn(v)
		if err != nil {
			return value.Absent[A](), err
		}
		return value.Just(a), nil
	}
	return Decoder[value.Maybe[A]]{fn, tstype.Union(d.typ, tstype.Null)}
}

// OneOf tries each decoder in order against the same input and
// returns the first success. Order is significant: JSON that several
// alternatives could decode resolves to the earliest one. If every
// alternative fails, OneOf returns the last attempted failure. OneOf
// panics when called with no decoders.
func OneOf[T any](ds ...Decoder[T]) Decoder[T] {
	if len(ds) == 0 {
		panic("decode: OneOf with no alternatives")
	}
	types := make([]tstype.Type, len(ds))
	for i, d := range ds {
		types[i] = d.typ
	}
	fn := func(v any) (T, error) {
		var (
			zero T
			err  error
		)
		for _, d := range ds {
			var out T
			out, err = d.fn(v)
			if err == nil {
				return out, nil
			}
		}
		return zero, err
	}
	return Decoder[T]{fn, tstype.Union(types...)}
}

// Lazy defers construction of a decoder until decoding time,
// allowing self-referential decoders. The thunk is invoked on every
// Decode call and never during construction. Because a recursive
// structural type has no finite printed form, a lazy decoder's type
// is unknown.
func Lazy[T any](thunk func() Decoder[T]) Decoder[T] {
	fn := func(v any) (T, error) { return thunk().fn(v) }
	return Decoder[T]{fn, tstype.Unknown}
}
