package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcxross/sui/pkg/errors"
)

const sampleManifest = `
[package]
name = "example"
edition = "2024"

[dependencies]
Sui = { git = "https://github.com/MystenLabs/sui.git", subdir = "crates/sui-framework/packages/sui-framework", rev = "framework/testnet" }
utils = { local = "../utils" }
ascii = { r.mvr = "@potatoes/ascii" }

[environments]
testnet = "4c78adac"
devnet = "abcd1234"

[addresses]
example = "0x0"
`

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "example", m.Package.Name)
	assert.Equal(t, "2024", m.Package.Edition)
	require.Len(t, m.Dependencies, 3)

	assert.Equal(t, SourceGit, m.Dependencies["Sui"].Source())
	assert.Equal(t, "framework/testnet", m.Dependencies["Sui"].Rev)
	assert.Equal(t, SourceLocal, m.Dependencies["utils"].Source())
	assert.Equal(t, "../utils", m.Dependencies["utils"].Local)

	ascii := m.Dependencies["ascii"]
	assert.Equal(t, SourceRegistry, ascii.Source())
	reg, name := ascii.RegistryName()
	assert.Equal(t, "mvr", reg)
	assert.Equal(t, "@potatoes/ascii", name)

	assert.Equal(t, "0x0", m.Addresses["example"])
}

func TestParseRejectsBadManifests(t *testing.T) {
	_, err := Parse([]byte(`[package`))
	assert.Error(t, err)

	_, err = Parse([]byte("[package]\nedition = \"2024\"\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPackage), "missing name: %v", err)
}

func TestEnvironmentList(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	assert.Equal(t, []Environment{
		{Name: "devnet", ChainID: "abcd1234"},
		{Name: "testnet", ChainID: "4c78adac"},
	}, m.EnvironmentList())

	bare, err := Parse([]byte("[package]\nname = \"bare\"\n"))
	require.NoError(t, err)
	envs := bare.EnvironmentList()
	assert.Equal(t, DefaultEnvironments, envs)

	envs[0].Name = "changed"
	assert.Equal(t, "mainnet", DefaultEnvironments[0].Name, "EnvironmentList must not alias the defaults")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, m.Dir)

	_, err = Load(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, errors.ErrCodeManifestNotFound), "got %v", err)

	bad := filepath.Join(dir, "bad")
	writeManifest(t, bad, "not = [valid")
	_, err = Load(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidManifest), "got %v", err)
}

func TestDependencySourceUnknown(t *testing.T) {
	assert.Equal(t, SourceUnknown, Dependency{}.Source())
	reg, name := Dependency{}.RegistryName()
	assert.Empty(t, reg)
	assert.Empty(t, name)
}
