package tstype

// Union returns the union of the given member types, normalized:
// nested unions are spliced in place rather than nested, structural
// duplicates collapse to the first occurrence, and a union of one
// member reduces to that member directly. Member order is first-seen
// order, which makes the printed form deterministic.
//
// Union panics when called with no members; the builder protocols in
// the encode and decode packages guarantee at least one variant is
// registered before a union is finalized.
func Union(members ...Type) Type {
	if len(members) == 0 {
		panic("tstype: union of zero types")
	}
	var flat []Type
	for _, m := range members {
		if u, ok := m.(UnionType); ok {
			flat = append(flat, u.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	var dedup []Type
	for _, m := range flat {
		if !containsType(dedup, m) {
			dedup = append(dedup, m)
		}
	}
	if len(dedup) == 1 {
		return dedup[0]
	}
	return UnionType{dedup}
}

func containsType(ts []Type, t Type) bool {
	for _, u := range ts {
		if Equal(u, t) {
			return true
		}
	}
	return false
}
