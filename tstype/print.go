package tstype

import (
	"encoding/json"
	"fmt"
	"strings"
)

func (b basic) String() string { return string(b) }

func (l LiteralType) String() string {
	out, err := json.Marshal(l.Value)
	if err != nil {
		// Literal payloads are JSON scalars by construction.
		panic(fmt.Sprintf("tstype: unprintable literal payload %v: %v", l.Value, err))
	}
	return string(out)
}

func (l ListType) String() string {
	return arrayOf(l.Elem)
}

func (d DictType) String() string {
	return "{ [key: string]: " + d.Value.String() + " }"
}

func (t TupleType) String() string {
	elems := make([]string, 0, len(t.Elems)+1)
	for _, e := range t.Elems {
		elems = append(elems, e.String())
	}
	if t.Rest != nil {
		elems = append(elems, "..."+arrayOf(t.Rest))
	}
	return "[ " + strings.Join(elems, ", ") + " ]"
}

func (o ObjectType) String() string {
	if len(o.Fields) == 0 {
		return "{}"
	}
	fields := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		opt := ""
		if f.Optional {
			opt = "?"
		}
		fields[i] = f.Name + opt + " : " + f.Type.String()
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

func (u UnionType) String() string {
	members := make([]string, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.String()
	}
	return strings.Join(members, " | ")
}

// arrayOf renders the array type of elem, parenthesizing union
// elements as TypeScript precedence requires: (A | B)[] rather than
// A | B[].
func arrayOf(elem Type) string {
	if _, ok := elem.(UnionType); ok {
		return "(" + elem.String() + ")[]"
	}
	return elem.String() + "[]"
}
