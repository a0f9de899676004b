package decode

// Visitor observes a decode as it happens. Every callback fires exactly
// once, in wire order, with the enclosing type id available wherever one
// exists (inlined primitives have none).
type Visitor interface {
	// OnTypeID fires once for every by-id TypeRef the decoder resolves,
	// except enumerations, which fire OnVariant instead.
	OnTypeID(typeID uint32)
	// OnVariant fires once an enumeration's variant byte has been read
	// and matched, before its fields are decoded.
	OnVariant(typeID uint32, index uint8)
	// OnPrimitive fires for every inlined primitive or compact value
	// decoded, fixed-width or not.
	OnPrimitive(v Value)
}

// NopVisitor implements Visitor with no-op callbacks; embed it to
// implement only the callbacks a particular visitor cares about.
type NopVisitor struct{}

func (NopVisitor) OnTypeID(uint32)         {}
func (NopVisitor) OnVariant(uint32, uint8) {}
func (NopVisitor) OnPrimitive(Value)       {}
