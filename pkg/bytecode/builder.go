package bytecode

// Builder assembles a CompiledModule table by table, interning identifiers,
// addresses, module handles and signatures. It is used by snapshot
// producers and by tests.
//
// The zero value is not usable; call NewBuilder.
type Builder struct {
	m         *CompiledModule
	idents    map[string]IdentifierIndex
	addrs     map[string]AddressIdentifierIndex
	modules   map[ModuleHandle]ModuleHandleIndex
	datatypes map[DatatypeHandle]DatatypeHandleIndex
}

// NewBuilder starts a module named name published at address.
func NewBuilder(address, name string) *Builder {
	b := &Builder{
		m:         &CompiledModule{},
		idents:    make(map[string]IdentifierIndex),
		addrs:     make(map[string]AddressIdentifierIndex),
		modules:   make(map[ModuleHandle]ModuleHandleIndex),
		datatypes: make(map[DatatypeHandle]DatatypeHandleIndex),
	}
	b.m.SelfHandle = b.Module(address, name)
	return b
}

// Identifier interns s and returns its index.
func (b *Builder) Identifier(s string) IdentifierIndex {
	if idx, ok := b.idents[s]; ok {
		return idx
	}
	idx := IdentifierIndex(len(b.m.Identifiers))
	b.m.Identifiers = append(b.m.Identifiers, s)
	b.idents[s] = idx
	return idx
}

func (b *Builder) address(addr string) AddressIdentifierIndex {
	if idx, ok := b.addrs[addr]; ok {
		return idx
	}
	idx := AddressIdentifierIndex(len(b.m.AddressIdentifiers))
	b.m.AddressIdentifiers = append(b.m.AddressIdentifiers, addr)
	b.addrs[addr] = idx
	return idx
}

// Module interns a handle for the module address::name.
func (b *Builder) Module(address, name string) ModuleHandleIndex {
	h := ModuleHandle{Address: b.address(address), Name: b.Identifier(name)}
	if idx, ok := b.modules[h]; ok {
		return idx
	}
	idx := ModuleHandleIndex(len(b.m.ModuleHandles))
	b.m.ModuleHandles = append(b.m.ModuleHandles, h)
	b.modules[h] = idx
	return idx
}

// Datatype interns a handle for type name defined in module.
func (b *Builder) Datatype(module ModuleHandleIndex, name string, typeParams int) DatatypeHandleIndex {
	h := DatatypeHandle{Module: module, Name: b.Identifier(name), TypeParameters: typeParams}
	if idx, ok := b.datatypes[h]; ok {
		return idx
	}
	idx := DatatypeHandleIndex(len(b.m.DatatypeHandles))
	b.m.DatatypeHandles = append(b.m.DatatypeHandles, h)
	b.datatypes[h] = idx
	return idx
}

// Self returns the handle of the module being built.
func (b *Builder) Self() ModuleHandleIndex { return b.m.SelfHandle }

// Signature appends sig to the signature pool.
func (b *Builder) Signature(sig ...Token) SignatureIndex {
	idx := SignatureIndex(len(b.m.Signatures))
	b.m.Signatures = append(b.m.Signatures, Signature(sig))
	return idx
}

// Function defines a function with typeParams unconstrained type
// parameters.
func (b *Builder) Function(name string, vis Visibility, typeParams int, params, returns []Token) FunctionHandleIndex {
	h := FunctionHandle{
		Module:         b.m.SelfHandle,
		Name:           b.Identifier(name),
		Parameters:     b.Signature(params...),
		Return:         b.Signature(returns...),
		TypeParameters: make([]AbilitySet, typeParams),
	}
	idx := FunctionHandleIndex(len(b.m.FunctionHandles))
	b.m.FunctionHandles = append(b.m.FunctionHandles, h)
	b.m.FunctionDefs = append(b.m.FunctionDefs, FunctionDefinition{Function: idx, Visibility: vis})
	return idx
}

// Build returns the assembled module. The builder must not be used after.
func (b *Builder) Build() *CompiledModule { return b.m }
