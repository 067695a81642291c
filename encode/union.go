package encode

import (
	"fmt"

	"github.com/creachadair/mds/mapset"

	"github.com/danderson/tsjson/tstype"
)

// A UnionValue is the encoding of one member of a declared union. It
// has no public constructor: only the variant handlers returned by
// [Variant], [Variant0], [VariantLiteral] and [VariantObject] produce
// one, so a union encoder cannot be handed a JSON shape that was not
// declared as a variant.
type UnionValue struct {
	v     any
	valid bool
}

// A UnionBuilder accumulates the variants of a union encoder. It is
// single-use: register each variant with the package-level Variant
// functions, then consume the builder with [UnionBuilder.Build].
type UnionBuilder[T any] struct {
	types []tstype.Type
	tags  mapset.Set[string]
	built bool
}

// Union returns a builder for a union encoder over T.
func Union[T any]() *UnionBuilder[T] {
	return &UnionBuilder[T]{tags: mapset.New[string]()}
}

// A VariantEncoder encodes the payload of one registered variant
// into a [UnionValue]. It is only valid for the union it was
// registered with.
type VariantEncoder[A any] struct {
	fn func(A) any
}

// Encode encodes a variant payload.
func (v VariantEncoder[A]) Encode(a A) UnionValue {
	return UnionValue{v.fn(a), true}
}

// A VariantEncoder0 encodes one registered variant that carries no
// payload.
type VariantEncoder0 struct {
	v any
}

// Encode encodes the variant.
func (v VariantEncoder0) Encode() UnionValue {
	return UnionValue{v.v, true}
}

// Variant registers a union variant encoded by enc, contributing
// enc's type to the union as-is.
func Variant[T, A any](b *UnionBuilder[T], enc Encoder[A]) VariantEncoder[A] {
	b.add(enc.typ)
	return VariantEncoder[A]{enc.fn}
}

// Variant0 registers a payload-free tagged variant, encoded as the
// object {"tag": name} and typed { tag : "name" }.
func Variant0[T any](b *UnionBuilder[T], name string) VariantEncoder0 {
	b.addTag(name)
	b.add(tstype.Object(tstype.Required("tag", tstype.Literal(name))))
	return VariantEncoder0{map[string]any{"tag": name}}
}

// VariantLiteral registers a variant encoded as the fixed JSON value
// lit, typed as the corresponding literal type.
func VariantLiteral[T any](b *UnionBuilder[T], lit any) VariantEncoder0 {
	b.add(tstype.Literal(lit))
	return VariantEncoder0{lit}
}

// VariantObject registers a tagged object variant with the given
// extra properties, typed { tag : "name"; ...fields }.
func VariantObject[T, A any](b *UnionBuilder[T], name string, props ...Property[A]) VariantEncoder[A] {
	b.addTag(name)
	tag := Property[A]{
		prop: tstype.Required("tag", tstype.Literal(name)),
		emit: func(A) (any, bool) { return name, true },
	}
	all := append([]Property[A]{tag}, props...)

	fields := make([]tstype.Property, len(all))
	for i, p := range all {
		fields[i] = p.prop
	}
	typ := tstype.Object(fields...)
	b.add(typ)

	fn := func(v A) any {
		out := make(map[string]any, len(all))
		for _, p := range all {
			if fv, ok := p.emit(v); ok {
				out[p.prop.Name] = fv
			}
		}
		return out
	}
	return VariantEncoder[A]{fn}
}

func (b *UnionBuilder[T]) add(t tstype.Type) {
	if b.built {
		panic("encode: variant registered on a consumed UnionBuilder")
	}
	b.types = append(b.types, t)
}

func (b *UnionBuilder[T]) addTag(name string) {
	if b.tags.Has(name) {
		panic(fmt.Sprintf("encode: duplicate union variant tag %q", name))
	}
	b.tags.Add(name)
}

// Build consumes the builder and returns the union encoder. The
// match function is the caller's own case analysis over T: for each
// input value it must invoke exactly one registered variant handler
// and return the result. Build panics if no variants were registered
// or if the builder was already consumed; the returned encoder
// panics if match returns a UnionValue that did not come from a
// variant handler.
func (b *UnionBuilder[T]) Build(match func(T) UnionValue) Encoder[T] {
	if b.built {
		panic("encode: UnionBuilder consumed twice")
	}
	if len(b.types) == 0 {
		panic("encode: union with no variants")
	}
	b.built = true
	typ := tstype.Union(b.types...)
	fn := func(v T) any {
		uv := match(v)
		if !uv.valid {
			panic("encode: union matcher returned a value not produced by a variant handler")
		}
		return uv.v
	}
	return Encoder[T]{fn, typ}
}
