package matcher

import "github.com/cascadefig/cascade/model"

// and is the result of conjoining two predicates (`defineAnd`, ): it
// matches only when both of its operands match, and its descriptor traces
// both origins so debug output can still show where each half came from.
type and struct {
	a, b       model.Predicate
	descriptor string
}

// And produces a predicate that is the logical AND of a and b, preserving a
// traceable descriptor name. Either operand may be nil, meaning "applies
// unconditionally" -- And treats a nil operand as always-matching, so
// conjoining a real predicate with a nil one just returns the real one
// unchanged, descriptor included.
func And(a, b model.Predicate) model.Predicate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &and{a: a, b: b, descriptor: "and(" + a.Descriptor() + "," + b.Descriptor() + ")"}
}

func (c *and) Match(relPath string) bool {
	return matchOrTrue(c.a, relPath) && matchOrTrue(c.b, relPath)
}

func (c *and) Descriptor() string {
	return c.descriptor
}

func matchOrTrue(p model.Predicate, relPath string) bool {
	if p == nil {
		return true
	}
	return p.Match(relPath)
}
