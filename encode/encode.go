// Package encode builds JSON encoders that carry their own
// TypeScript type description.
//
// An [Encoder] pairs a pure encoding function with a [tstype.Type]
// describing the JSON it produces. Both halves are assembled together
// by the combinators in this package, so the runtime shape and the
// printed type cannot drift apart. Encoding is total: given a
// well-typed input it always produces a JSON value and has no failure
// mode.
//
// The JSON representation is the generic one used by encoding/json:
// nil, bool, string, numbers, []any, and map[string]any.
package encode

import (
	"encoding/json"

	"github.com/creachadair/mds/value"

	"github.com/danderson/tsjson/tstype"
)

// An Encoder converts values of type T to JSON values. Encoders are
// immutable once built and safe for concurrent use.
type Encoder[T any] struct {
	fn  func(T) any
	typ tstype.Type
}

// New returns an Encoder from a raw encoding function and the type
// of the JSON it produces. It is the escape hatch for encodings this
// package's combinators cannot express; fn must produce JSON values
// conforming to typ.
func New[T any](fn func(T) any, typ tstype.Type) Encoder[T] {
	return Encoder[T]{fn, typ}
}

// Encode returns the JSON value for v.
func (e Encoder[T]) Encode(v T) any { return e.fn(v) }

// Type returns the type of the JSON values the encoder produces.
func (e Encoder[T]) Type() tstype.Type { return e.typ }

// TypeDef returns the printed TypeScript type of the encoder's
// output.
func (e Encoder[T]) TypeDef() string { return e.typ.String() }

// EncodeToString encodes v and serializes the result to JSON text.
func (e Encoder[T]) EncodeToString(v T) (string, error) {
	out, err := json.Marshal(e.fn(v))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// String encodes a Go string as a JSON string.
func String() Encoder[string] {
	return Encoder[string]{func(v string) any { return v }, tstype.String}
}

// Int encodes a Go int as a JSON number.
func Int() Encoder[int] {
	return Encoder[int]{func(v int) any { return v }, tstype.Number}
}

// Float encodes a Go float64 as a JSON number.
func Float() Encoder[float64] {
	return Encoder[float64]{func(v float64) any { return v }, tstype.Number}
}

// Bool encodes a Go bool as a JSON boolean.
func Bool() Encoder[bool] {
	return Encoder[bool]{func(v bool) any { return v }, tstype.Boolean}
}

// Null encodes its (empty) input as JSON null.
func Null() Encoder[struct{}] {
	return Encoder[struct{}]{func(struct{}) any { return nil }, tstype.Null}
}

// Literal encodes any input as the fixed JSON value lit, whose type
// is the corresponding literal type. lit must be a JSON scalar or
// nil.
func Literal[T any](lit any) Encoder[T] {
	return Encoder[T]{func(T) any { return lit }, tstype.Literal(lit)}
}

// Unknown passes an already-generic JSON value through unchanged,
// typed as unknown.
func Unknown() Encoder[any] {
	return Encoder[any]{func(v any) any { return v }, tstype.Unknown}
}

// Map returns an Encoder for A that transforms its input with f and
// delegates to e. The JSON shape, and therefore the type, is e's;
// only the accepted input type changes.
func Map[A, B any](f func(A) B, e Encoder[B]) Encoder[A] {
	return Encoder[A]{func(v A) any { return e.fn(f(v)) }, e.typ}
}

// List encodes a slice element-wise as a JSON array.
func List[T any](elem Encoder[T]) Encoder[[]T] {
	fn := func(vs []T) any {
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = elem.fn(v)
		}
		return out
	}
	return Encoder[[]T]{fn, tstype.List(elem.typ)}
}

// Dict encodes a string-keyed map with a uniform value encoder.
func Dict[V any](val Encoder[V]) Encoder[map[string]V] {
	fn := func(m map[string]V) any {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = val.fn(v)
		}
		return out
	}
	return Encoder[map[string]V]{fn, tstype.Dict(val.typ)}
}

// Tuple1 encodes a value as a one-element JSON array.
func Tuple1[T, A any](getA func(T) A, a Encoder[A]) Encoder[T] {
	fn := func(v T) any {
		return []any{a.fn(getA(v))}
	}
	return Encoder[T]{fn, tstype.Tuple(a.typ)}
}

// Tuple2 encodes a value as a two-element JSON array, extracting
// each element with its getter.
func Tuple2[T, A, B any](getA func(T) A, a Encoder[A], getB func(T) B, b Encoder[B]) Encoder[T] {
	fn := func(v T) any {
		return []any{a.fn(getA(v)), b.fn(getB(v))}
	}
	return Encoder[T]{fn, tstype.Tuple(a.typ, b.typ)}
}

// Tuple3 encodes a value as a three-element JSON array, extracting
// each element with its getter.
func Tuple3[T, A, B, C any](getA func(T) A, a Encoder[A], getB func(T) B, b Encoder[B], getC func(T) C, c Encoder[C]) Encoder[T] {
	fn := func(v T) any {
		return []any{a.fn(getA(v)), b.fn(getB(v)), c.fn(getC(v))}
	}
	return Encoder[T]{fn, tstype.Tuple(a.typ, b.typ, c.typ)}
}

// A Property describes one field of an object encoding: a name, the
// field's type, and how to extract and encode it from the enclosing
// value.
type Property[T any] struct {
	prop tstype.Property
	emit func(T) (any, bool)
}

// Required returns an object property that is always emitted.
func Required[T, F any](name string, get func(T) F, enc Encoder[F]) Property[T] {
	return Property[T]{
		prop: tstype.Required(name, enc.typ),
		emit: func(v T) (any, bool) { return enc.fn(get(v)), true },
	}
}

// Optional returns an object property that is emitted only when the
// getter yields a present value. An absent optional field is omitted
// from the JSON object entirely, not emitted as null.
func Optional[T, F any](name string, get func(T) value.Maybe[F], enc Encoder[F]) Property[T] {
	return Property[T]{
		prop: tstype.Optional(name, enc.typ),
		emit: func(v T) (any, bool) {
			f, ok := get(v).GetOK()
			if !ok {
				return nil, false
			}
			return enc.fn(f), true
		},
	}
}

// Object encodes a value as a JSON object with the given properties.
// Property order is preserved in the printed type. Property names
// must be unique; Object panics on duplicates.
func Object[T any](props ...Property[T]) Encoder[T] {
	fields := make([]tstype.Property, len(props))
	for i, p := range props {
		fields[i] = p.prop
	}
	typ := tstype.Object(fields...) // panics on duplicate names
	fn := func(v T) any {
		out := make(map[string]any, len(props))
		for _, p := range props {
			if fv, ok := p.emit(v); ok {
				out[p.prop.Name] = fv
			}
		}
		return out
	}
	return Encoder[T]{fn, typ}
}

// Maybe encodes a present value with e and an absent value as JSON
// null, typed as the union of e's type with null. A present value
// encodes bare, not wrapped in any envelope.
func Maybe[A any](e Encoder[A]) Encoder[value.Maybe[A]] {
	b := Union[value.Maybe[A]]()
	just := Variant(b, e)
	nothing := Variant(b, Null())
	return b.Build(func(m value.Maybe[A]) UnionValue {
		if v, ok := m.GetOK(); ok {
			return just.Encode(v)
		}
		return nothing.Encode(struct{}{})
	})
}

// Lazy defers construction of an encoder until encoding time,
// allowing self-referential encoders. The thunk is invoked on every
// Encode call and never during construction. Because a recursive
// structural type has no finite printed form, a lazy encoder's type
// is unknown.
func Lazy[T any](thunk func() Encoder[T]) Encoder[T] {
	return Encoder[T]{func(v T) any { return thunk().fn(v) }, tstype.Unknown}
}
