// Package tsjson constructs bidirectional JSON codecs that carry a
// TypeScript type description.
//
// A [Codec] pairs one encoder and one decoder for the same logical
// type. The combinators in this package build both sides together
// from a single definition, so a value's runtime JSON shape and its
// printed static type cannot drift apart: both derive from the same
// combinator tree at construction time.
//
// Encoders and decoders can also be assembled independently with the
// encode and decode subpackages; this package's Codec surface is the
// paired construction on top of them.
package tsjson

import (
	"github.com/creachadair/mds/value"

	"github.com/danderson/tsjson/decode"
	"github.com/danderson/tsjson/encode"
	"github.com/danderson/tsjson/tstype"
)

// A Codec is a paired encoder and decoder for values of type T. Both
// sides describe the same JSON shape by construction. Codecs are
// immutable once built and safe for concurrent use.
type Codec[T any] struct {
	enc encode.Encoder[T]
	dec decode.Decoder[T]
}

// Pair returns a Codec from an independently built encoder and
// decoder. The two must describe the same JSON shape; Pair does not
// verify this, it is the caller's construction discipline. Prefer
// the paired combinators, which keep the sides in sync for you.
func Pair[T any](enc encode.Encoder[T], dec decode.Decoder[T]) Codec[T] {
	return Codec[T]{enc, dec}
}

// Encoder returns the encode half of the codec.
func (c Codec[T]) Encoder() encode.Encoder[T] { return c.enc }

// Decoder returns the decode half of the codec.
func (c Codec[T]) Decoder() decode.Decoder[T] { return c.dec }

// Encode returns the JSON value for v.
func (c Codec[T]) Encode(v T) any { return c.enc.Encode(v) }

// EncodeToString encodes v and serializes the result to JSON text.
func (c Codec[T]) EncodeToString(v T) (string, error) { return c.enc.EncodeToString(v) }

// Decode decodes a generic JSON value.
func (c Codec[T]) Decode(v any) (T, error) { return c.dec.Decode(v) }

// DecodeString parses JSON text and decodes the result.
func (c Codec[T]) DecodeString(s string) (T, error) { return c.dec.DecodeString(s) }

// Type returns the codec's type description.
func (c Codec[T]) Type() tstype.Type { return c.enc.Type() }

// TypeDef returns the printed TypeScript type of the codec.
func (c Codec[T]) TypeDef() string { return c.enc.TypeDef() }

// String is a codec for JSON strings.
func String() Codec[string] {
	return Codec[string]{encode.String(), decode.String()}
}

// Int is a codec for JSON numbers with integral values.
func Int() Codec[int] {
	return Codec[int]{encode.Int(), decode.Int()}
}

// Float is a codec for JSON numbers.
func Float() Codec[float64] {
	return Codec[float64]{encode.Float(), decode.Float()}
}

// Bool is a codec for JSON booleans.
func Bool() Codec[bool] {
	return Codec[bool]{encode.Bool(), decode.Bool()}
}

// Literal is a codec between the fixed value v and the fixed JSON
// value lit. Encoding any input produces lit; decoding accepts
// exactly lit and yields v.
func Literal[T any](v T, lit any) Codec[T] {
	return Codec[T]{encode.Literal[T](lit), decode.Literal(v, lit)}
}

// Unknown is a codec that passes generic JSON values through
// unchanged, typed as unknown.
func Unknown() Codec[any] {
	return Codec[any]{encode.Unknown(), decode.Unknown()}
}

// Map derives a codec for B from a codec for A and a pair of
// conversions between the two.
func Map[A, B any](to func(A) B, from func(B) A, c Codec[A]) Codec[B] {
	return Codec[B]{encode.Map(from, c.enc), decode.Map(to, c.dec)}
}

// List is a codec for homogeneous JSON arrays.
func List[T any](elem Codec[T]) Codec[[]T] {
	return Codec[[]T]{encode.List(elem.enc), decode.List(elem.dec)}
}

// Dict is a codec for string-keyed JSON objects with a uniform value
// type.
func Dict[V any](val Codec[V]) Codec[map[string]V] {
	return Codec[map[string]V]{encode.Dict(val.enc), decode.Dict(val.dec)}
}

// Tuple2 is a codec between T and a two-element JSON array. The
// getters extract the elements for encoding; ctor rebuilds T from
// decoded elements.
func Tuple2[T, A, B any](ctor func(A, B) T, getA func(T) A, a Codec[A], getB func(T) B, b Codec[B]) Codec[T] {
	return Codec[T]{
		encode.Tuple2(getA, a.enc, getB, b.enc),
		decode.Tuple2(ctor, a.dec, b.dec),
	}
}

// Tuple3 is a codec between T and a three-element JSON array.
func Tuple3[T, A, B, C any](ctor func(A, B, C) T, getA func(T) A, a Codec[A], getB func(T) B, b Codec[B], getC func(T) C, c Codec[C]) Codec[T] {
	return Codec[T]{
		encode.Tuple3(getA, a.enc, getB, b.enc, getC, c.enc),
		decode.Tuple3(ctor, a.dec, b.dec, c.dec),
	}
}

// Maybe is a codec between an optional value and the union of the
// underlying JSON type with null. A present value encodes bare, not
// wrapped in any envelope; an absent value encodes as null.
func Maybe[A any](c Codec[A]) Codec[value.Maybe[A]] {
	return Codec[value.Maybe[A]]{encode.Maybe(c.enc), decode.Nullable(c.dec)}
}

// Lazy defers construction of a codec until encode or decode time,
// allowing self-referential codecs. The thunk runs on every
// invocation and never during construction, so a recursive
// definition does not recurse eagerly. A lazy codec's type is
// unknown.
func Lazy[T any](thunk func() Codec[T]) Codec[T] {
	return Codec[T]{
		encode.Lazy(func() encode.Encoder[T] { return thunk().enc }),
		decode.Lazy(func() decode.Decoder[T] { return thunk().dec }),
	}
}
