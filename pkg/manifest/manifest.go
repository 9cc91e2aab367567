// Package manifest reads Move.toml package manifests and discovers
// package roots on disk.
package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mcxross/sui/pkg/errors"
)

// FileName is the name of a Move package manifest.
const FileName = "Move.toml"

// Manifest is the parsed content of a Move.toml.
type Manifest struct {
	Package         PackageInfo           `toml:"package"`
	Dependencies    map[string]Dependency `toml:"dependencies"`
	DevDependencies map[string]Dependency `toml:"dev-dependencies"`
	Environments    map[string]string     `toml:"environments"`
	Addresses       map[string]string     `toml:"addresses"`

	// Dir is the package root the manifest was loaded from.
	Dir string `toml:"-"`
}

// PackageInfo is the [package] table.
type PackageInfo struct {
	Name        string `toml:"name"`
	Edition     string `toml:"edition"`
	Version     string `toml:"version"`
	PublishedAt string `toml:"published-at"`
}

// Dependency is one entry of the [dependencies] table. Exactly one source
// is expected: a local path, a git repository, or a registry name under
// the r.<registry> key.
type Dependency struct {
	Local    string            `toml:"local"`
	Git      string            `toml:"git"`
	Rev      string            `toml:"rev"`
	Subdir   string            `toml:"subdir"`
	Registry map[string]string `toml:"r"`
	Override bool              `toml:"override"`
}

// Source classifies where a dependency comes from.
type Source int

const (
	SourceUnknown Source = iota
	SourceLocal
	SourceGit
	SourceRegistry
)

// Source reports the kind of source d declares.
func (d Dependency) Source() Source {
	switch {
	case d.Local != "":
		return SourceLocal
	case d.Git != "":
		return SourceGit
	case len(d.Registry) > 0:
		return SourceRegistry
	default:
		return SourceUnknown
	}
}

// RegistryName returns the registry and name of a registry dependency,
// choosing the lexically first registry when several are given.
func (d Dependency) RegistryName() (registry, name string) {
	keys := make([]string, 0, len(d.Registry))
	for k := range d.Registry {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", ""
	}
	slices.Sort(keys)
	return keys[0], d.Registry[keys[0]]
}

// Environment is a named chain a package can be built for.
type Environment struct {
	Name    string
	ChainID string
}

// DefaultEnvironments are used when a manifest declares none.
var DefaultEnvironments = []Environment{
	{Name: "mainnet", ChainID: "35834a8a"},
	{Name: "testnet", ChainID: "4c78adac"},
}

// EnvironmentList returns the declared environments sorted by name, or
// DefaultEnvironments if none are declared.
func (m *Manifest) EnvironmentList() []Environment {
	if len(m.Environments) == 0 {
		return slices.Clone(DefaultEnvironments)
	}
	envs := make([]Environment, 0, len(m.Environments))
	for name, id := range m.Environments {
		envs = append(envs, Environment{Name: name, ChainID: id})
	}
	slices.SortFunc(envs, func(a, b Environment) int { return strings.Compare(a.Name, b.Name) })
	return envs
}

// Load reads dir/Move.toml.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "no %s in %s", FileName, dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	m.Dir = dir
	return m, nil
}

// Parse decodes manifest content. The package name is required.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := errors.ValidatePackageName(m.Package.Name); err != nil {
		return nil, err
	}
	return &m, nil
}
