// Package tree renders the modules view and the deps view as indented
// trees. Structure and color are separate concerns: the Renderer builds
// prefixes and text, and a Styler decides how each piece looks.
package tree

import (
	"io"
	"strings"

	"github.com/mcxross/sui/pkg/depgraph"
	"github.com/mcxross/sui/pkg/modules"
)

// Renderer writes tree lines to an io.Writer.
//
// The first write error is kept and returned by Err; later writes are
// skipped.
type Renderer struct {
	w       io.Writer
	style   Styler
	charset Charset
	err     error
}

// New returns a Renderer writing to w. A nil styler renders plain text.
func New(w io.Writer, s Styler, cs Charset) *Renderer {
	if s == nil {
		s = Plain{}
	}
	return &Renderer{w: w, style: s, charset: cs}
}

// Err returns the first error encountered while writing.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) writeLine(parts ...string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, strings.Join(parts, "")+"\n")
}

// Header writes the unprefixed package line. relPath is the package root
// relative to the scanned path; it is omitted when empty.
func (r *Renderer) Header(name, relPath string) {
	line := r.style.Style(RolePackageKeyword, "package") + " " + r.style.Style(RolePackageName, name)
	if relPath != "" {
		line += " " + r.style.Style(RolePath, "("+relPath+")")
	}
	r.writeLine(line)
}

// Modules writes one line per module and, under it, one line per public
// function.
func (r *Renderer) Modules(mods []modules.ModuleInfo) {
	for i, m := range mods {
		branch, cont := r.charset.marker(i == len(mods)-1)
		r.writeLine(branch, r.style.Style(RoleModuleKeyword, "module"), " ", r.style.Style(RoleModuleName, m.Name))

		for j, fn := range m.Functions {
			fnBranch, _ := r.charset.marker(j == len(m.Functions)-1)
			r.writeLine(cont, fnBranch, r.function(fn))
		}
	}
}

func (r *Renderer) function(fn modules.FunctionInfo) string {
	var b strings.Builder
	b.WriteString(r.style.Style(RoleFunKeyword, "fun"))
	b.WriteString(" ")
	b.WriteString(r.style.Style(RoleFunctionName, fn.Name))
	if len(fn.TypeParams) > 0 {
		b.WriteString("<" + r.join(RoleTypeParam, fn.TypeParams) + ">")
	}
	b.WriteString("(" + r.join(RoleParam, fn.Params) + "): ")

	switch len(fn.Returns) {
	case 0:
		b.WriteString(r.style.Style(RoleReturn, "()"))
	case 1:
		b.WriteString(r.style.Style(RoleReturn, fn.Returns[0]))
	default:
		b.WriteString("(" + r.join(RoleReturn, fn.Returns) + ")")
	}
	return b.String()
}

func (r *Renderer) join(role Role, items []string) string {
	styled := make([]string, len(items))
	for i, s := range items {
		styled[i] = r.style.Style(role, s)
	}
	return strings.Join(styled, ", ")
}

// Deps writes the entries produced by depgraph.Walk. Entries must be in
// walk order: each entry is at most one level deeper than the previous.
func (r *Renderer) Deps(entries []depgraph.Entry) {
	var continuations []string
	for _, e := range entries {
		if e.Depth < len(continuations) {
			continuations = continuations[:e.Depth]
		}
		branch, cont := r.charset.marker(e.Last)
		r.writeLine(strings.Join(continuations, ""), branch, r.dependency(e))
		continuations = append(continuations, cont)
	}
}

func (r *Renderer) dependency(e depgraph.Entry) string {
	if e.Placeholder {
		return r.style.Style(RolePlaceholder, depgraph.NoDependencies)
	}
	s := r.style.Style(RoleDependency, e.Name)
	if e.Registry != "" {
		s += " " + r.style.Style(RoleAnnotation, "("+e.Registry+")")
	}
	if e.ID != "" {
		s += " " + r.style.Style(RoleAnnotation, "["+e.ID+"]")
	}
	if e.Shared {
		s += " " + r.style.Style(RoleShared, "(shared)")
	}
	return s
}
