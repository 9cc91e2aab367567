package tree

// Role is the semantic role of a piece of text in a tree line.
type Role int

const (
	RoleNone Role = iota
	RolePackageKeyword
	RolePackageName
	RolePath
	RoleModuleKeyword
	RoleModuleName
	RoleFunKeyword
	RoleFunctionName
	RoleTypeParam
	RoleParam
	RoleReturn
	RoleDependency
	RoleAnnotation
	RoleShared
	RolePlaceholder
)

// Styler decorates text according to its role. Implementations must not
// change the visible characters of text, only wrap them.
type Styler interface {
	Style(role Role, text string) string
}

// Plain is a Styler that returns text unchanged.
type Plain struct{}

// Style returns text as is.
func (Plain) Style(_ Role, text string) string { return text }

// StylerFunc adapts a function to Styler.
type StylerFunc func(role Role, text string) string

// Style calls f(role, text).
func (f StylerFunc) Style(role Role, text string) string { return f(role, text) }

// Charset holds the branch markers used to draw the tree.
type Charset struct {
	Branch string // through-branch marker for a non-last sibling
	Last   string // terminal marker for the last sibling
	Pipe   string // continuation under a non-last sibling
	Blank  string // continuation under the last sibling
}

var (
	// ASCII draws trees with plain ASCII characters.
	ASCII = Charset{Branch: "|-- ", Last: "`-- ", Pipe: "|   ", Blank: "    "}

	// Unicode draws trees with box-drawing characters.
	Unicode = Charset{Branch: "├── ", Last: "└── ", Pipe: "│   ", Blank: "    "}
)

// CharsetByName returns the charset called name ("ascii" or "unicode").
func CharsetByName(name string) (Charset, bool) {
	switch name {
	case "ascii", "":
		return ASCII, true
	case "unicode":
		return Unicode, true
	default:
		return Charset{}, false
	}
}

func (c Charset) marker(last bool) (branch, continuation string) {
	if last {
		return c.Last, c.Blank
	}
	return c.Branch, c.Pipe
}
