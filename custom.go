package tsjson

import (
	"fmt"

	"github.com/creachadair/mds/mapset"

	"github.com/danderson/tsjson/decode"
	"github.com/danderson/tsjson/encode"
	"github.com/danderson/tsjson/tstype"
)

// A CustomBuilder accumulates the variants of a tagged-union codec.
// Each VariantN registration extends the encode side and the decode
// side together from one definition, keyed on the variant's tag
// string, so the two cannot fall out of sync. The builder is
// single-use: register variants with the package-level VariantN
// functions, then consume the builder with
// [CustomBuilder.BuildCustom].
type CustomBuilder[T any] struct {
	encB     *encode.UnionBuilder[T]
	variants []customVariant[T]
	tags     mapset.Set[string]
}

type customVariant[T any] struct {
	tag string
	dec decode.Decoder[T]
}

// Custom returns a builder for a tagged-union codec over T.
func Custom[T any]() *CustomBuilder[T] {
	return &CustomBuilder[T]{
		encB: encode.Union[T](),
		tags: mapset.New[string](),
	}
}

func (b *CustomBuilder[T]) register(name string) {
	if b.tags.Has(name) {
		panic(fmt.Sprintf("tsjson: duplicate variant tag %q", name))
	}
	b.tags.Add(name)
}

// Variant0 registers a variant with no payload, encoded as
// {"tag": name}. It returns the encode handler for the variant, to
// be invoked from the matcher passed to BuildCustom. Decoding an
// object whose tag equals name yields ctor().
func Variant0[T any](b *CustomBuilder[T], name string, ctor func() T) func() encode.UnionValue {
	typ := tstype.Object(tstype.Required("tag", tstype.Literal(name)))
	b.register(name)

	h := encode.Variant(b.encB, encode.New(func(struct{}) any {
		return map[string]any{"tag": name}
	}, typ))

	dec := decode.Map(func(string) T { return ctor() },
		decode.Field("tag", decode.Literal(name, name)))
	b.variants = append(b.variants, customVariant[T]{name, dec})

	return func() encode.UnionValue { return h.Encode(struct{}{}) }
}

// Variant1 registers a variant with one payload value, encoded as
// {"tag": name, "args": [a]}. Decoding checks the tag before the
// payload, so a malformed payload under the wrong tag cannot mask a
// later variant in the alternation.
func Variant1[T, A any](b *CustomBuilder[T], name string, ctor func(A) T, argA Codec[A]) func(A) encode.UnionValue {
	typ := tstype.Object(
		tstype.Required("args", tstype.Tuple(argA.dec.Type())),
		tstype.Required("tag", tstype.Literal(name)),
	)
	b.register(name)

	h := encode.Variant(b.encB, encode.New(func(a A) any {
		return map[string]any{"tag": name, "args": []any{argA.enc.Encode(a)}}
	}, typ))

	tagDec := decode.Field("tag", decode.Literal(name, name))
	argsDec := decode.Field("args", decode.Tuple1(ctor, argA.dec))
	dec := decode.New(func(v any) (T, error) {
		var zero T
		if _, err := tagDec.Decode(v); err != nil {
			return zero, err
		}
		return argsDec.Decode(v)
	}, typ)
	b.variants = append(b.variants, customVariant[T]{name, dec})

	return func(a A) encode.UnionValue { return h.Encode(a) }
}

type args2[A, B any] struct {
	a A
	b B
}

// Variant2 registers a variant with two payload values, encoded as
// {"tag": name, "args": [a, b]}.
func Variant2[T, A, B any](b *CustomBuilder[T], name string, ctor func(A, B) T, argA Codec[A], argB Codec[B]) func(A, B) encode.UnionValue {
	typ := tstype.Object(
		tstype.Required("args", tstype.Tuple(argA.dec.Type(), argB.dec.Type())),
		tstype.Required("tag", tstype.Literal(name)),
	)
	b.register(name)

	h := encode.Variant(b.encB, encode.New(func(p args2[A, B]) any {
		return map[string]any{
			"tag":  name,
			"args": []any{argA.enc.Encode(p.a), argB.enc.Encode(p.b)},
		}
	}, typ))

	tagDec := decode.Field("tag", decode.Literal(name, name))
	argsDec := decode.Field("args", decode.Tuple2(ctor, argA.dec, argB.dec))
	dec := decode.New(func(v any) (T, error) {
		var zero T
		if _, err := tagDec.Decode(v); err != nil {
			return zero, err
		}
		return argsDec.Decode(v)
	}, typ)
	b.variants = append(b.variants, customVariant[T]{name, dec})

	return func(a A, bb B) encode.UnionValue { return h.Encode(args2[A, B]{a, bb}) }
}

type args3[A, B, C any] struct {
	a A
	b B
	c C
}

// Variant3 registers a variant with three payload values, encoded as
// {"tag": name, "args": [a, b, c]}.
func Variant3[T, A, B, C any](b *CustomBuilder[T], name string, ctor func(A, B, C) T, argA Codec[A], argB Codec[B], argC Codec[C]) func(A, B, C) encode.UnionValue {
	typ := tstype.Object(
		tstype.Required("args", tstype.Tuple(argA.dec.Type(), argB.dec.Type(), argC.dec.Type())),
		tstype.Required("tag", tstype.Literal(name)),
	)
	b.register(name)

	h := encode.Variant(b.encB, encode.New(func(p args3[A, B, C]) any {
		return map[string]any{
			"tag":  name,
			"args": []any{argA.enc.Encode(p.a), argB.enc.Encode(p.b), argC.enc.Encode(p.c)},
		}
	}, typ))

	tagDec := decode.Field("tag", decode.Literal(name, name))
	argsDec := decode.Field("args", decode.Tuple3(ctor, argA.dec, argB.dec, argC.dec))
	dec := decode.New(func(v any) (T, error) {
		var zero T
		if _, err := tagDec.Decode(v); err != nil {
			return zero, err
		}
		return argsDec.Decode(v)
	}, typ)
	b.variants = append(b.variants, customVariant[T]{name, dec})

	return func(a A, bb B, cc C) encode.UnionValue {
		return h.Encode(args3[A, B, C]{a, bb, cc})
	}
}

// BuildCustom consumes the builder and returns the codec. The match
// function is the caller's case analysis over T: for each value it
// must invoke exactly one registered variant handler and return the
// result. Decoding dispatches on the incoming object's tag: the
// matching variant decodes the payload, so a payload failure is
// reported as that variant's error rather than a mismatch against
// some other variant. An object whose tag is outside the registered
// set fails with a dedicated error. BuildCustom panics if no variants
// were registered or the builder was already consumed.
func (b *CustomBuilder[T]) BuildCustom(match func(T) encode.UnionValue) Codec[T] {
	enc := b.encB.Build(match)
	variants := b.variants
	decs := make([]decode.Decoder[T], len(variants))
	for i, vr := range variants {
		decs[i] = vr.dec
	}
	alts := decode.OneOf(decs...)
	dec := decode.New(func(v any) (T, error) {
		if obj, ok := v.(map[string]any); ok {
			if tag, ok := obj["tag"].(string); ok {
				for _, vr := range variants {
					if vr.tag == tag {
						return vr.dec.Decode(v)
					}
				}
				var zero T
				return zero, &decode.DecodeError{
					Reason: fmt.Errorf("tag %q matched no declared variant", tag),
				}
			}
		}
		// Not a tagged object; the alternation reports the failure.
		return alts.Decode(v)
	}, alts.Type())
	return Codec[T]{enc, dec}
}
