// Package modules builds the modules view: for every root module of a
// compiled package, its public functions with formatted signatures.
package modules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcxross/sui/pkg/bytecode"
)

// FormatToken renders tok as Move source syntax, resolving datatype
// handles through m. Types defined in m itself render unqualified; all
// others render as module::Type.
//
// FormatToken panics if tok references a handle m cannot resolve.
func FormatToken(m *bytecode.CompiledModule, tok bytecode.Token) string {
	switch tok.Kind {
	case bytecode.KindBool:
		return "bool"
	case bytecode.KindU8:
		return "u8"
	case bytecode.KindU16:
		return "u16"
	case bytecode.KindU32:
		return "u32"
	case bytecode.KindU64:
		return "u64"
	case bytecode.KindU128:
		return "u128"
	case bytecode.KindU256:
		return "u256"
	case bytecode.KindAddress:
		return "address"
	case bytecode.KindSigner:
		return "signer"
	case bytecode.KindVector:
		return "vector<" + FormatToken(m, *tok.Inner) + ">"
	case bytecode.KindReference:
		return "&" + FormatToken(m, *tok.Inner)
	case bytecode.KindMutableReference:
		return "&mut " + FormatToken(m, *tok.Inner)
	case bytecode.KindTypeParameter:
		return "T" + strconv.Itoa(int(tok.Index))
	case bytecode.KindDatatype:
		return formatDatatype(m, tok.Handle, nil)
	case bytecode.KindDatatypeInstantiation:
		return formatDatatype(m, tok.Handle, tok.TypeArgs)
	default:
		panic(fmt.Sprintf("modules: unknown token kind %d", uint8(tok.Kind)))
	}
}

func formatDatatype(m *bytecode.CompiledModule, idx bytecode.DatatypeHandleIndex, args []bytecode.Token) string {
	h := m.DatatypeHandleAt(idx)
	name := m.IdentifierAt(h.Name)
	if h.Module != m.SelfHandle {
		owner := m.IdentifierAt(m.ModuleHandleAt(h.Module).Name)
		name = owner + "::" + name
	}
	if len(args) == 0 {
		return name
	}
	return name + "<" + formatList(m, args) + ">"
}

func formatList(m *bytecode.CompiledModule, toks []bytecode.Token) string {
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = FormatToken(m, tok)
	}
	return strings.Join(parts, ", ")
}
