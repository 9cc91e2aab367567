// Package resolve turns a package's Move.toml into a dependency graph for
// the deps view.
//
// Local dependencies are followed recursively. Git and registry
// dependencies become leaves: fetching them is the job of the package
// manager, and the deps view only needs their identity.
package resolve

import (
	"context"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/mcxross/sui/pkg/depgraph"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
)

// Resolver builds the dependency graph rooted at a package directory.
type Resolver interface {
	Resolve(ctx context.Context, root string) (*depgraph.PackageNode, error)
}

// LocalResolver resolves dependencies by reading manifests from disk.
type LocalResolver struct {
	// IncludeDev adds [dev-dependencies] of the root package.
	IncludeDev bool
	// Logger receives debug messages (optional).
	Logger func(string, ...any)
}

// Resolve implements Resolver.
func (r *LocalResolver) Resolve(ctx context.Context, root string) (*depgraph.PackageNode, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", root)
	}
	s := &session{
		ctx:    ctx,
		logf:   r.Logger,
		nodes:  make(map[string]*depgraph.PackageNode),
		owners: make(map[string]string),
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}
	node, err := s.local(abs, r.IncludeDev)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// session holds the state of one Resolve call.
type session struct {
	ctx   context.Context
	logf  func(string, ...any)
	nodes map[string]*depgraph.PackageNode // source key -> node
	// owners maps an assigned package ID to the source key that owns it.
	owners map[string]string
}

// local loads the package at dir (absolute) and its dependencies.
func (s *session) local(dir string, includeDev bool) (*depgraph.PackageNode, error) {
	key := "local:" + dir
	if n, ok := s.nodes[key]; ok {
		return n, nil
	}
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	m, err := manifest.Load(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolve, err, "resolve package at %s", dir)
	}
	s.logf("resolved %s at %s", m.Package.Name, dir)

	n := &depgraph.PackageNode{
		ID:           s.assignID(m.Package.Name, key),
		DisplayName:  m.Package.Name,
		RegistryName: m.Package.Name,
		Deps:         make(map[string]*depgraph.PackageNode),
	}
	// Registered before the children so that cycles end here.
	s.nodes[key] = n

	deps := m.Dependencies
	if includeDev && len(m.DevDependencies) > 0 {
		deps = make(map[string]manifest.Dependency, len(m.Dependencies)+len(m.DevDependencies))
		for name, d := range m.DevDependencies {
			deps[name] = d
		}
		for name, d := range m.Dependencies {
			deps[name] = d
		}
	}

	for _, name := range sortedNames(deps) {
		child, err := s.dependency(dir, name, deps[name])
		if err != nil {
			return nil, err
		}
		n.Deps[name] = child
	}
	return n, nil
}

func (s *session) dependency(parent, name string, d manifest.Dependency) (*depgraph.PackageNode, error) {
	switch d.Source() {
	case manifest.SourceLocal:
		dir := d.Local
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(parent, dir)
		}
		return s.local(filepath.Clean(dir), false)
	case manifest.SourceGit:
		key := "git:" + d.Git + "@" + d.Rev + "/" + d.Subdir
		return s.leaf(key, name, name), nil
	case manifest.SourceRegistry:
		registry, regName := d.RegistryName()
		if registry == "mvr" {
			if err := errors.ValidateRegistryName(regName); err != nil {
				return nil, errors.Wrap(errors.ErrCodeResolve, err, "dependency %q of %s", name, parent)
			}
		}
		return s.leaf("r."+registry+":"+regName, name, regName), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "dependency %q of %s declares no source", name, parent)
	}
}

// leaf returns the node for an unfetched dependency.
func (s *session) leaf(key, name, registryName string) *depgraph.PackageNode {
	if n, ok := s.nodes[key]; ok {
		return n
	}
	n := &depgraph.PackageNode{
		ID:           s.assignID(name, key),
		DisplayName:  name,
		RegistryName: registryName,
		Deps:         map[string]*depgraph.PackageNode{},
	}
	s.nodes[key] = n
	s.logf("dependency %s is not fetched (%s)", name, key)
	return n
}

// assignID returns name, or name_1, name_2, ... when another source
// already owns name.
func (s *session) assignID(name, key string) string {
	id := name
	for i := 1; ; i++ {
		owner, taken := s.owners[id]
		if !taken || owner == key {
			s.owners[id] = key
			return id
		}
		id = name + "_" + strconv.Itoa(i)
	}
}

func sortedNames(deps map[string]manifest.Dependency) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
