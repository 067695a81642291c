package tsjson

import (
	"github.com/creachadair/mds/value"

	"github.com/danderson/tsjson/decode"
	"github.com/danderson/tsjson/encode"
	"github.com/danderson/tsjson/tstype"
)

// A FieldCodec describes one field of an object codec: its name, its
// type, how to extract it from T for encoding, and how to decode it
// from the enclosing JSON object. Build fields with [Field],
// [OptionalField] and [NullableField], and combine them with one of
// the ObjectN constructors.
type FieldCodec[T, F any] struct {
	prop tstype.Property
	enc  encode.Property[T]
	dec  decode.Decoder[F] // applied to the whole enclosing object
}

// Field returns a required object field. It is always present in
// encoded output, and its absence from decoded input is an error.
func Field[T, F any](name string, get func(T) F, c Codec[F]) FieldCodec[T, F] {
	return FieldCodec[T, F]{
		prop: tstype.Required(name, c.dec.Type()),
		enc:  encode.Required(name, get, c.enc),
		dec:  decode.Field(name, c.dec),
	}
}

// OptionalField returns an optional object field. An absent value
// omits the key from the encoded object entirely; a missing key
// decodes to an absent value.
func OptionalField[T, F any](name string, get func(T) value.Maybe[F], c Codec[F]) FieldCodec[T, value.Maybe[F]] {
	return FieldCodec[T, value.Maybe[F]]{
		prop: tstype.Optional(name, c.dec.Type()),
		enc:  encode.Optional(name, get, c.enc),
		dec:  decode.OptionalField(name, c.dec),
	}
}

// NullableField returns a required field whose value may be null. It
// is always present in encoded output, as null when the value is
// absent, and a missing key is a decode failure. Its type is the
// union of the field type with null.
func NullableField[T, F any](name string, get func(T) value.Maybe[F], c Codec[F]) FieldCodec[T, value.Maybe[F]] {
	return FieldCodec[T, value.Maybe[F]]{
		prop: tstype.Required(name, tstype.Union(c.dec.Type(), tstype.Null)),
		enc:  encode.Required(name, get, encode.Maybe(c.enc)),
		dec:  decode.Field(name, decode.Nullable(c.dec)),
	}
}

// Object1 returns a codec for an object with one field. Decoding
// decodes each field and applies ctor to the results in declaration
// order; encoding emits each field per its declaration. Duplicate
// field names panic at construction.
func Object1[T, A any](ctor func(A) T, fa FieldCodec[T, A]) Codec[T] {
	enc := encode.Object(fa.enc)
	typ := tstype.Object(fa.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object2 returns a codec for an object with two fields.
func Object2[T, A, B any](ctor func(A, B) T, fa FieldCodec[T, A], fb FieldCodec[T, B]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc)
	typ := tstype.Object(fa.prop, fb.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object3 returns a codec for an object with three fields.
func Object3[T, A, B, C any](ctor func(A, B, C) T, fa FieldCodec[T, A], fb FieldCodec[T, B], fc FieldCodec[T, C]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc, fc.enc)
	typ := tstype.Object(fa.prop, fb.prop, fc.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		c, err := fc.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b, c), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object4 returns a codec for an object with four fields.
func Object4[T, A, B, C, D any](ctor func(A, B, C, D) T, fa FieldCodec[T, A], fb FieldCodec[T, B], fc FieldCodec[T, C], fd FieldCodec[T, D]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc, fc.enc, fd.enc)
	typ := tstype.Object(fa.prop, fb.prop, fc.prop, fd.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		c, err := fc.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		d, err := fd.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b, c, d), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object5 returns a codec for an object with five fields.
func Object5[T, A, B, C, D, E any](ctor func(A, B, C, D, E) T, fa FieldCodec[T, A], fb FieldCodec[T, B], fc FieldCodec[T, C], fd FieldCodec[T, D], fe FieldCodec[T, E]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc, fc.enc, fd.enc, fe.enc)
	typ := tstype.Object(fa.prop, fb.prop, fc.prop, fd.prop, fe.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		c, err := fc.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		d, err := fd.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		e, err := fe.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b, c, d, e), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object6 returns a codec for an object with six fields.
func Object6[T, A, B, C, D, E, F any](ctor func(A, B, C, D, E, F) T, fa FieldCodec[T, A], fb FieldCodec[T, B], fc FieldCodec[T, C], fd FieldCodec[T, D], fe FieldCodec[T, E], ff FieldCodec[T, F]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc, fc.enc, fd.enc, fe.enc, ff.enc)
	typ := tstype.Object(fa.prop, fb.prop, fc.prop, fd.prop, fe.prop, ff.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		c, err := fc.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		d, err := fd.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		e, err := fe.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		f, err := ff.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b, c, d, e, f), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object7 returns a codec for an object with seven fields.
func Object7[T, A, B, C, D, E, F, G any](ctor func(A, B, C, D, E, F, G) T, fa FieldCodec[T, A], fb FieldCodec[T, B], fc FieldCodec[T, C], fd FieldCodec[T, D], fe FieldCodec[T, E], ff FieldCodec[T, F], fg FieldCodec[T, G]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc, fc.enc, fd.enc, fe.enc, ff.enc, fg.enc)
	typ := tstype.Object(fa.prop, fb.prop, fc.prop, fd.prop, fe.prop, ff.prop, fg.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		c, err := fc.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		d, err := fd.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		e, err := fe.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		f, err := ff.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		g, err := fg.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b, c, d, e, f, g), nil
	}, typ)
	return Codec[T]{enc, dec}
}

// Object8 returns a codec for an object with eight fields. Wider
// objects compose by nesting: group related fields into sub-structs
// with their own codecs.
func Object8[T, A, B, C, D, E, F, G, H any](ctor func(A, B, C, D, E, F, G, H) T, fa FieldCodec[T, A], fb FieldCodec[T, B], fc FieldCodec[T, C], fd FieldCodec[T, D], fe FieldCodec[T, E], ff FieldCodec[T, F], fg FieldCodec[T, G], fh FieldCodec[T, H]) Codec[T] {
	enc := encode.Object(fa.enc, fb.enc, fc.enc, fd.enc, fe.enc, ff.enc, fg.enc, fh.enc)
	typ := tstype.Object(fa.prop, fb.prop, fc.prop, fd.prop, fe.prop, ff.prop, fg.prop, fh.prop)
	dec := decode.New(func(v any) (T, error) {
		var zero T
		a, err := fa.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		b, err := fb.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		c, err := fc.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		d, err := fd.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		e, err := fe.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		f, err := ff.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		g, err := fg.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		h, err := fh.dec.Decode(v)
		if err != nil {
			return zero, err
		}
		return ctor(a, b, c, d, e, f, g, h), nil
	}, typ)
	return Codec[T]{enc, dec}
}
