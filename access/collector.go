// Package access drives a decode of an extrinsic's bytes and its
// additional-signed payload, collecting exactly which type ids (and,
// for enumerations, which variants) that decode touched. The result is
// the minimal disclosure set a merkle.Proof needs to cover.
package access

import "github.com/bkchr/merkelized-metadata/decode"

// Record is what one decode learned about a single type id: either every
// variant of an enumeration was reachable (All), or only a subset was
// (Variants). Non-enumeration type ids always end up with All set.
type Record struct {
	All      bool
	Variants map[uint8]bool
}

// Collector is a decode.Visitor that accumulates a Record per type id
// touched during a decode. Its zero value is not usable; use
// NewCollector.
type Collector struct {
	decode.NopVisitor
	records map[uint32]*Record
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{records: make(map[uint32]*Record)}
}

// OnTypeID implements decode.Visitor.
func (c *Collector) OnTypeID(id uint32) {
	c.recordFor(id).All = true
}

// OnVariant implements decode.Visitor.
func (c *Collector) OnVariant(id uint32, index uint8) {
	r := c.recordFor(id)
	if r.All {
		return
	}
	r.Variants[index] = true
}

func (c *Collector) recordFor(id uint32) *Record {
	r, ok := c.records[id]
	if !ok {
		r = &Record{Variants: make(map[uint8]bool)}
		c.records[id] = r
	}
	return r
}

// Records returns every type id touched so far, mapped to what was
// touched of it.
func (c *Collector) Records() map[uint32]*Record {
	return c.records
}
