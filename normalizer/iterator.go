package normalizer

import (
	"github.com/cascadefig/cascade/matcher"
	"github.com/cascadefig/cascade/model"
)

// Elements is a pull iterator over normalized elements: a demand-driven
// sequence, not an asynchronous stream. Next returns (nil, nil) once
// exhausted. Each call may perform I/O inline (loading an `extends` target,
// resolving a plugin) -- there is no cooperative yield, and no goroutines
// are involved; the whole walk is single-threaded and synchronous.
type Elements interface {
	Next() (*model.Element, error)
}

// Collect drains an Elements iterator into a slice. Most callers (Cascade,
// Factory) need a concrete, cacheable ElementArray rather than a live
// iterator, so this is the usual way a Normalize() result gets consumed.
func Collect(it Elements) ([]*model.Element, error) {
	var out []*model.Element
	for {
		e, err := it.Next()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return out, nil
		}
		out = append(out, e)
	}
}

// sliceElements is the base case: a precomputed, already-materialized list
// of elements (used for the single "body" element each ConfigData yields).
type sliceElements struct {
	items []*model.Element
	idx   int
}

func (s *sliceElements) Next() (*model.Element, error) {
	if s.idx >= len(s.items) {
		return nil, nil
	}
	e := s.items[s.idx]
	s.idx++
	return e, nil
}

// lazyElements defers building its inner iterator (and therefore any I/O
// that building requires -- loading an extends target from disk) until the
// first call to Next(), so a consumer that stops pulling early never pays
// for work it didn't ask for.
type lazyElements struct {
	build func() (Elements, error)
	inner Elements
	built bool
}

func (l *lazyElements) Next() (*model.Element, error) {
	if !l.built {
		inner, err := l.build()
		if err != nil {
			return nil, err
		}
		l.inner = inner
		l.built = true
	}
	if l.inner == nil {
		return nil, nil
	}
	return l.inner.Next()
}

// chainElements runs a sequence of stage iterators in order, advancing to
// the next stage only once the current one is exhausted. This is how
// extends-elements, auto-processor-elements, the body element, and
// overrides-elements are stitched into a single ordered sequence without
// materializing any stage ahead of when it's needed.
type chainElements struct {
	stages []Elements
	idx    int
}

func (c *chainElements) Next() (*model.Element, error) {
	for c.idx < len(c.stages) {
		e, err := c.stages[c.idx].Next()
		if err != nil {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
		c.idx++
	}
	return nil, nil
}

// conjoinElements wraps an inner iterator, conjoining a parent predicate onto
// every element it yields -- a parent's predicate is conjoined onto elements
// flattened from its `extends`/`overrides`. A predicated element's root-ness
// is suppressed, since only an unconditional element may declare root.
type conjoinElements struct {
	inner     Elements
	predicate model.Predicate
}

func (c *conjoinElements) Next() (*model.Element, error) {
	e, err := c.inner.Next()
	if err != nil || e == nil {
		return e, err
	}
	clone := *e
	clone.MatchFile = matcher.And(c.predicate, e.MatchFile)
	if clone.MatchFile != nil {
		clone.Root = nil
	}
	return &clone, nil
}
