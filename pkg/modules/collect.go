package modules

import (
	"slices"
	"strconv"
	"strings"

	"github.com/mcxross/sui/pkg/bytecode"
)

// FunctionInfo is a public function with its signature already formatted.
type FunctionInfo struct {
	Name       string
	TypeParams []string // placeholder names T0..Tn-1
	Params     []string
	Returns    []string
}

// ModuleInfo is a module and its public functions, sorted by name.
type ModuleInfo struct {
	Name      string
	Functions []FunctionInfo
}

// Collect builds one ModuleInfo per root module of pkg. Dependency modules
// are ignored. Modules and functions are sorted by name, so the result
// does not depend on the order of the binary tables.
func Collect(pkg *bytecode.Package) []ModuleInfo {
	mods := make([]ModuleInfo, 0, len(pkg.RootModules))
	for _, m := range pkg.RootModules {
		mods = append(mods, collectModule(m))
	}
	slices.SortStableFunc(mods, func(a, b ModuleInfo) int { return strings.Compare(a.Name, b.Name) })
	return mods
}

func collectModule(m *bytecode.CompiledModule) ModuleInfo {
	var fns []FunctionInfo
	for _, def := range m.FunctionDefs {
		if def.Visibility != bytecode.VisibilityPublic {
			continue
		}
		h := m.FunctionHandleAt(def.Function)
		fns = append(fns, FunctionInfo{
			Name:       m.IdentifierAt(h.Name),
			TypeParams: placeholders(len(h.TypeParameters)),
			Params:     formatSignature(m, m.SignatureAt(h.Parameters)),
			Returns:    formatSignature(m, m.SignatureAt(h.Return)),
		})
	}
	slices.SortStableFunc(fns, func(a, b FunctionInfo) int { return strings.Compare(a.Name, b.Name) })
	return ModuleInfo{Name: m.Name(), Functions: fns}
}

// placeholders returns T0..Tn-1. Type parameter names do not survive
// compilation, only their arity does.
func placeholders(n int) []string {
	if n == 0 {
		return nil
	}
	names := make([]string, n)
	for i := range names {
		names[i] = "T" + strconv.Itoa(i)
	}
	return names
}

func formatSignature(m *bytecode.CompiledModule, sig bytecode.Signature) []string {
	if len(sig) == 0 {
		return nil
	}
	out := make([]string, len(sig))
	for i, tok := range sig {
		out[i] = FormatToken(m, tok)
	}
	return out
}

// Signature renders fn the way the modules view prints it, without
// styling: name<T0, T1>(p1, p2): ret.
func (fn FunctionInfo) Signature() string {
	var b strings.Builder
	b.WriteString(fn.Name)
	if len(fn.TypeParams) > 0 {
		b.WriteString("<" + strings.Join(fn.TypeParams, ", ") + ">")
	}
	b.WriteString("(" + strings.Join(fn.Params, ", ") + "): ")
	b.WriteString(fn.ReturnList())
	return b.String()
}

// ReturnList renders the return types: "()" for none, the bare type for
// one, and a parenthesized list otherwise.
func (fn FunctionInfo) ReturnList() string {
	switch len(fn.Returns) {
	case 0:
		return "()"
	case 1:
		return fn.Returns[0]
	default:
		return "(" + strings.Join(fn.Returns, ", ") + ")"
	}
}
