package bytecode

import (
	"errors"
	"fmt"
)

// Table indices.
type (
	ModuleHandleIndex      uint16
	DatatypeHandleIndex    uint16
	FunctionHandleIndex    uint16
	SignatureIndex         uint16
	IdentifierIndex        uint16
	AddressIdentifierIndex uint16
)

// Visibility of a function definition. Values follow the binary format.
type Visibility uint8

const (
	VisibilityPrivate Visibility = 0
	VisibilityPublic  Visibility = 1
	VisibilityFriend  Visibility = 3
)

// String returns the source keyword for v.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityPublic:
		return "public"
	case VisibilityFriend:
		return "public(package)"
	default:
		return fmt.Sprintf("Visibility(%d)", uint8(v))
	}
}

// ModuleHandle names a module: an address and an identifier.
type ModuleHandle struct {
	Address AddressIdentifierIndex `json:"address" msgpack:"address"`
	Name    IdentifierIndex        `json:"name" msgpack:"name"`
}

// DatatypeHandle names a struct or enum and the module that defines it.
type DatatypeHandle struct {
	Module         ModuleHandleIndex `json:"module" msgpack:"module"`
	Name           IdentifierIndex   `json:"name" msgpack:"name"`
	TypeParameters int               `json:"type_parameters,omitempty" msgpack:"type_parameters,omitempty"`
}

// FunctionHandle is the declaration half of a function: where it lives,
// its name and its signature.
type FunctionHandle struct {
	Module         ModuleHandleIndex `json:"module" msgpack:"module"`
	Name           IdentifierIndex   `json:"name" msgpack:"name"`
	Parameters     SignatureIndex    `json:"parameters" msgpack:"parameters"`
	Return         SignatureIndex    `json:"return" msgpack:"return"`
	TypeParameters []AbilitySet      `json:"type_parameters,omitempty" msgpack:"type_parameters,omitempty"`
}

// AbilitySet is the bitset of abilities constraining a type parameter.
type AbilitySet uint8

// FunctionDefinition is a function implemented by the module.
type FunctionDefinition struct {
	Function   FunctionHandleIndex `json:"function" msgpack:"function"`
	Visibility Visibility          `json:"visibility" msgpack:"visibility"`
	IsEntry    bool                `json:"is_entry,omitempty" msgpack:"is_entry,omitempty"`
}

// Signature is an ordered list of tokens.
type Signature []Token

// CompiledModule is one module of a compiled package.
type CompiledModule struct {
	SelfHandle         ModuleHandleIndex    `json:"self_handle" msgpack:"self_handle"`
	ModuleHandles      []ModuleHandle       `json:"module_handles" msgpack:"module_handles"`
	DatatypeHandles    []DatatypeHandle     `json:"datatype_handles" msgpack:"datatype_handles"`
	FunctionHandles    []FunctionHandle     `json:"function_handles" msgpack:"function_handles"`
	FunctionDefs       []FunctionDefinition `json:"function_defs" msgpack:"function_defs"`
	Signatures         []Signature          `json:"signatures" msgpack:"signatures"`
	Identifiers        []string             `json:"identifiers" msgpack:"identifiers"`
	AddressIdentifiers []string             `json:"address_identifiers" msgpack:"address_identifiers"`
}

// Package is the output of compiling one package root.
type Package struct {
	Name              string            `json:"name" msgpack:"name"`
	RootModules       []*CompiledModule `json:"root_modules" msgpack:"root_modules"`
	DependencyModules []*CompiledModule `json:"dependency_modules,omitempty" msgpack:"dependency_modules,omitempty"`
}

// Name returns the module's own name.
func (m *CompiledModule) Name() string {
	return m.IdentifierAt(m.ModuleHandleAt(m.SelfHandle).Name)
}

// ModuleHandleAt returns the module handle at idx.
func (m *CompiledModule) ModuleHandleAt(idx ModuleHandleIndex) ModuleHandle {
	if int(idx) >= len(m.ModuleHandles) {
		panic(fmt.Sprintf("bytecode: module handle %d out of range (%d)", idx, len(m.ModuleHandles)))
	}
	return m.ModuleHandles[idx]
}

// DatatypeHandleAt returns the datatype handle at idx.
func (m *CompiledModule) DatatypeHandleAt(idx DatatypeHandleIndex) DatatypeHandle {
	if int(idx) >= len(m.DatatypeHandles) {
		panic(fmt.Sprintf("bytecode: datatype handle %d out of range (%d)", idx, len(m.DatatypeHandles)))
	}
	return m.DatatypeHandles[idx]
}

// FunctionHandleAt returns the function handle at idx.
func (m *CompiledModule) FunctionHandleAt(idx FunctionHandleIndex) FunctionHandle {
	if int(idx) >= len(m.FunctionHandles) {
		panic(fmt.Sprintf("bytecode: function handle %d out of range (%d)", idx, len(m.FunctionHandles)))
	}
	return m.FunctionHandles[idx]
}

// SignatureAt returns the signature at idx.
func (m *CompiledModule) SignatureAt(idx SignatureIndex) Signature {
	if int(idx) >= len(m.Signatures) {
		panic(fmt.Sprintf("bytecode: signature %d out of range (%d)", idx, len(m.Signatures)))
	}
	return m.Signatures[idx]
}

// IdentifierAt returns the identifier at idx.
func (m *CompiledModule) IdentifierAt(idx IdentifierIndex) string {
	if int(idx) >= len(m.Identifiers) {
		panic(fmt.Sprintf("bytecode: identifier %d out of range (%d)", idx, len(m.Identifiers)))
	}
	return m.Identifiers[idx]
}

// Errors returned by Validate.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownKind     = errors.New("unknown token kind")
	ErrMissingInner    = errors.New("container token without inner token")
)

// Validate checks that every index reachable from the function
// definitions resolves. A module that passes Validate never makes the
// accessors panic.
func (m *CompiledModule) Validate() error {
	if int(m.SelfHandle) >= len(m.ModuleHandles) {
		return fmt.Errorf("self handle %d: %w", m.SelfHandle, ErrIndexOutOfRange)
	}
	for i, h := range m.ModuleHandles {
		if int(h.Name) >= len(m.Identifiers) {
			return fmt.Errorf("module handle %d name: %w", i, ErrIndexOutOfRange)
		}
		if int(h.Address) >= len(m.AddressIdentifiers) {
			return fmt.Errorf("module handle %d address: %w", i, ErrIndexOutOfRange)
		}
	}
	for i, h := range m.DatatypeHandles {
		if int(h.Module) >= len(m.ModuleHandles) {
			return fmt.Errorf("datatype handle %d module: %w", i, ErrIndexOutOfRange)
		}
		if int(h.Name) >= len(m.Identifiers) {
			return fmt.Errorf("datatype handle %d name: %w", i, ErrIndexOutOfRange)
		}
	}
	for i, h := range m.FunctionHandles {
		if int(h.Name) >= len(m.Identifiers) {
			return fmt.Errorf("function handle %d name: %w", i, ErrIndexOutOfRange)
		}
		if int(h.Module) >= len(m.ModuleHandles) {
			return fmt.Errorf("function handle %d module: %w", i, ErrIndexOutOfRange)
		}
		if int(h.Parameters) >= len(m.Signatures) || int(h.Return) >= len(m.Signatures) {
			return fmt.Errorf("function handle %d signature: %w", i, ErrIndexOutOfRange)
		}
	}
	for i, d := range m.FunctionDefs {
		if int(d.Function) >= len(m.FunctionHandles) {
			return fmt.Errorf("function definition %d: %w", i, ErrIndexOutOfRange)
		}
	}
	for i, sig := range m.Signatures {
		for j, tok := range sig {
			if err := m.validateToken(tok); err != nil {
				return fmt.Errorf("signature %d token %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func (m *CompiledModule) validateToken(tok Token) error {
	switch {
	case tok.Kind.IsPrimitive(), tok.Kind == KindTypeParameter:
		return nil
	case tok.Kind == KindVector, tok.Kind == KindReference, tok.Kind == KindMutableReference:
		if tok.Inner == nil {
			return fmt.Errorf("%s: %w", tok.Kind, ErrMissingInner)
		}
		return m.validateToken(*tok.Inner)
	case tok.Kind == KindDatatype, tok.Kind == KindDatatypeInstantiation:
		if int(tok.Handle) >= len(m.DatatypeHandles) {
			return fmt.Errorf("datatype handle %d: %w", tok.Handle, ErrIndexOutOfRange)
		}
		for _, arg := range tok.TypeArgs {
			if err := m.validateToken(arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%d: %w", uint8(tok.Kind), ErrUnknownKind)
	}
}

// Validate checks every root and dependency module of p.
func (p *Package) Validate() error {
	for i, m := range p.RootModules {
		if m == nil {
			return fmt.Errorf("root module %d is nil", i)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("root module %d: %w", i, err)
		}
	}
	for i, m := range p.DependencyModules {
		if m == nil {
			continue
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("dependency module %d: %w", i, err)
		}
	}
	return nil
}
