// Package tstype models TypeScript-style structural types.
//
// A [Type] describes the JSON shape that an encoder produces or a
// decoder accepts. Types are immutable values built with the
// constructor functions in this package, and print to TypeScript
// type expressions via [Type.String]. The printed text is a
// compatibility contract: identical Type values always print
// identically, byte for byte.
package tstype

import "reflect"

// A Type is a structural type description. The concrete types in
// this package are the only implementations.
type Type interface {
	// String returns the TypeScript rendering of the type.
	String() string

	tsType()
}

// Basic kinds, one value each. They are exported as variables rather
// than structs so that callers can write tstype.String directly.
var (
	// String is the TypeScript string type.
	String Type = basic("string")
	// Number is the TypeScript number type. JSON does not
	// distinguish integers from floats, so both integer and float
	// codecs share this one kind and deduplicate to a single union
	// member.
	Number Type = basic("number")
	// Boolean is the TypeScript boolean type.
	Boolean Type = basic("boolean")
	// Null is the TypeScript null type.
	Null Type = basic("null")
	// Unknown is the opaque escape hatch, TypeScript's unknown.
	Unknown Type = basic("unknown")
)

type basic string

func (basic) tsType() {}

// LiteralType is a type inhabited by exactly one JSON scalar or null
// value, such as the literal "auto" or 404.
type LiteralType struct {
	// Value is the literal JSON payload: a string, bool, number,
	// or nil.
	Value any
}

func (LiteralType) tsType() {}

// Literal returns the type of the single JSON value v.
func Literal(v any) Type { return LiteralType{v} }

// ListType is a homogeneous array type.
type ListType struct {
	Elem Type
}

func (ListType) tsType() {}

// List returns the array type with element type elem.
func List(elem Type) Type { return ListType{elem} }

// DictType is a string-keyed map with a uniform value type, printed
// as an index signature.
type DictType struct {
	Value Type
}

func (DictType) tsType() {}

// Dict returns the uniform-value object type with value type v.
func Dict(v Type) Type { return DictType{v} }

// TupleType is a fixed-length array type, optionally followed by a
// variadic rest element.
type TupleType struct {
	Elems []Type
	Rest  Type // nil if the tuple is fixed length
}

func (TupleType) tsType() {}

// Tuple returns the tuple type with the given element types.
func Tuple(elems ...Type) Type { return TupleType{Elems: elems} }

// TupleWithRest returns the tuple type with the given leading
// element types and a trailing variadic rest element.
func TupleWithRest(rest Type, elems ...Type) Type {
	return TupleType{Elems: elems, Rest: rest}
}

// A Property is one named member of an object type. Field order
// within an object is insertion order and is preserved through
// printing.
type Property struct {
	Name     string
	Type     Type
	Optional bool
}

// Required returns a required object property.
func Required(name string, t Type) Property {
	return Property{Name: name, Type: t}
}

// Optional returns an optional object property. An optional property
// may be entirely absent from a conforming JSON object.
func Optional(name string, t Type) Property {
	return Property{Name: name, Type: t, Optional: true}
}

// ObjectType is an object type with a fixed set of named properties.
type ObjectType struct {
	Fields []Property
}

func (ObjectType) tsType() {}

// Object returns the object type with the given properties, in
// order. Property names must be unique; Object panics on duplicates.
func Object(fields ...Property) Type {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			panic("tstype: duplicate object property " + f.Name)
		}
		seen[f.Name] = true
	}
	return ObjectType{fields}
}

// UnionType is a union of several member types. Build unions with
// [Union], which flattens and deduplicates; a well-formed UnionType
// never contains another UnionType and never contains duplicates.
type UnionType struct {
	Members []Type
}

func (UnionType) tsType() {}

// Equal reports whether a and b are structurally equal. Literal
// payloads compare as JSON values, so numeric literals of different
// Go widths compare equal when they denote the same number.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case basic:
		bt, ok := b.(basic)
		return ok && at == bt
	case LiteralType:
		bt, ok := b.(LiteralType)
		return ok && JSONEqual(at.Value, bt.Value)
	case ListType:
		bt, ok := b.(ListType)
		return ok && Equal(at.Elem, bt.Elem)
	case DictType:
		bt, ok := b.(DictType)
		return ok && Equal(at.Value, bt.Value)
	case TupleType:
		bt, ok := b.(TupleType)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !Equal(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		if (at.Rest == nil) != (bt.Rest == nil) {
			return false
		}
		return at.Rest == nil || Equal(at.Rest, bt.Rest)
	case ObjectType:
		bt, ok := b.(ObjectType)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i, f := range at.Fields {
			g := bt.Fields[i]
			if f.Name != g.Name || f.Optional != g.Optional || !Equal(f.Type, g.Type) {
				return false
			}
		}
		return true
	case UnionType:
		bt, ok := b.(UnionType)
		if !ok || len(at.Members) != len(bt.Members) {
			return false
		}
		for i := range at.Members {
			if !Equal(at.Members[i], bt.Members[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// JSONEqual reports whether two JSON scalar payloads denote the same
// JSON value. Numbers compare by value regardless of Go type, since
// JSON has a single number kind. Literal decoders use the same
// equality, so a literal type matches exactly the values it prints.
func JSONEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
