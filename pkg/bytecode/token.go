package bytecode

import "fmt"

// Kind identifies the variant of a [Token].
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindAddress
	KindSigner
	KindVector
	KindReference
	KindMutableReference
	KindTypeParameter
	KindDatatype
	KindDatatypeInstantiation
)

var kindNames = map[Kind]string{
	KindBool:                  "bool",
	KindU8:                    "u8",
	KindU16:                   "u16",
	KindU32:                   "u32",
	KindU64:                   "u64",
	KindU128:                  "u128",
	KindU256:                  "u256",
	KindAddress:               "address",
	KindSigner:                "signer",
	KindVector:                "vector",
	KindReference:             "reference",
	KindMutableReference:      "mutable_reference",
	KindTypeParameter:         "type_parameter",
	KindDatatype:              "datatype",
	KindDatatypeInstantiation: "datatype_instantiation",
}

// String returns the snapshot name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsPrimitive reports whether the kind carries no payload.
func (k Kind) IsPrimitive() bool { return k >= KindBool && k <= KindSigner }

// MarshalText encodes the kind by name so snapshots stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown token kind %d", uint8(k))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", text)
}

// Token is a signature token: the type of a parameter, a return value or a
// type argument.
type Token struct {
	Kind     Kind                `json:"kind" msgpack:"kind"`
	Inner    *Token              `json:"inner,omitempty" msgpack:"inner,omitempty"`
	Index    uint16              `json:"index,omitempty" msgpack:"index,omitempty"`
	Handle   DatatypeHandleIndex `json:"handle,omitempty" msgpack:"handle,omitempty"`
	TypeArgs []Token             `json:"type_args,omitempty" msgpack:"type_args,omitempty"`
}

// Primitive tokens.
var (
	Bool    = Token{Kind: KindBool}
	U8      = Token{Kind: KindU8}
	U16     = Token{Kind: KindU16}
	U32     = Token{Kind: KindU32}
	U64     = Token{Kind: KindU64}
	U128    = Token{Kind: KindU128}
	U256    = Token{Kind: KindU256}
	Address = Token{Kind: KindAddress}
	Signer  = Token{Kind: KindSigner}
)

// Vector returns a vector token over inner.
func Vector(inner Token) Token { return Token{Kind: KindVector, Inner: &inner} }

// Ref returns an immutable reference token to inner.
func Ref(inner Token) Token { return Token{Kind: KindReference, Inner: &inner} }

// MutRef returns a mutable reference token to inner.
func MutRef(inner Token) Token { return Token{Kind: KindMutableReference, Inner: &inner} }

// TypeParam returns a token for the i-th type parameter of the enclosing
// function.
func TypeParam(i uint16) Token { return Token{Kind: KindTypeParameter, Index: i} }

// Datatype returns a token naming a non-generic datatype.
func Datatype(h DatatypeHandleIndex) Token { return Token{Kind: KindDatatype, Handle: h} }

// Instantiate returns a token naming a generic datatype applied to args.
func Instantiate(h DatatypeHandleIndex, args ...Token) Token {
	return Token{Kind: KindDatatypeInstantiation, Handle: h, TypeArgs: args}
}
