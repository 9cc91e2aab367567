package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/lithammer/dedent"

	"github.com/mcxross/sui/pkg/bytecode"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/tree"
)

func golden(s string) string {
	return strings.TrimPrefix(dedent.Dedent(s), "\n")
}

// runCLI executes the root command with a private config file holding
// configDoc and returns what was printed to stdout.
func runCLI(t *testing.T, configDoc string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte(configDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", cfgPath))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeSnapshot(t *testing.T, dir string, pkg *bytecode.Package) {
	t.Helper()
	data, err := json.Marshal(pkg)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "snapshot.json"), string(data))
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// catCompiler makes each package's "compiler" print its snapshot.json.
const catCompiler = `
[compiler]
command = ["sh", "-c", "cat snapshot.json"]
`

// twoPackages lays out a/ (alpha) and b/ (beta) under a fresh directory.
func twoPackages(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "a", "Move.toml"), "[package]\nname = \"alpha\"\n")
	writeFile(t, filepath.Join(dir, "a", "sources", "coin.move"), "module alpha::coin {}")
	cb := bytecode.NewBuilder("0x2", "coin")
	coin := cb.Datatype(cb.Self(), "Coin", 1)
	cb.Function("value", bytecode.VisibilityPublic, 1,
		[]bytecode.Token{bytecode.Ref(bytecode.Instantiate(coin, bytecode.TypeParam(0)))},
		[]bytecode.Token{bytecode.U64})
	writeSnapshot(t, filepath.Join(dir, "a"), &bytecode.Package{Name: "alpha", RootModules: []*bytecode.CompiledModule{cb.Build()}})

	writeFile(t, filepath.Join(dir, "b", "Move.toml"), "[package]\nname = \"beta\"\n")
	mb := bytecode.NewBuilder("0x3", "math")
	mb.Function("add", bytecode.VisibilityPublic, 0,
		[]bytecode.Token{bytecode.U64, bytecode.U64}, []bytecode.Token{bytecode.U64})
	mb.Function("hidden", bytecode.VisibilityPrivate, 0, nil, nil)
	writeSnapshot(t, filepath.Join(dir, "b"), &bytecode.Package{Name: "beta", RootModules: []*bytecode.CompiledModule{mb.Build()}})

	return dir
}

func TestModulesView(t *testing.T) {
	requireShell(t)
	dir := twoPackages(t)

	for _, args := range [][]string{
		{dir, "--no-cache"},
		{"modules", dir, "--no-cache"},
	} {
		out, err := runCLI(t, catCompiler, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		want := golden(`
			package alpha (a)
			` + "`" + `-- module coin
			    ` + "`" + `-- fun value<T0>(&Coin<T0>): u64

			package beta (b)
			` + "`" + `-- module math
			    ` + "`" + `-- fun add(u64, u64): u64
		`)
		if out != want {
			t.Errorf("%v output =\n%s\nwant\n%s", args, out, want)
		}
	}
}

func TestModulesViewStopsAtFailingRoot(t *testing.T) {
	requireShell(t)
	dir := twoPackages(t)
	if err := os.Remove(filepath.Join(dir, "b", "snapshot.json")); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, catCompiler, dir, "--no-cache")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeCompile) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeCompile)
	}
	msg := errors.Describe(err)
	if !strings.Contains(msg, "failed to compile Move package at "+filepath.Join(dir, "b")) {
		t.Errorf("error = %q", msg)
	}
	if !strings.Contains(msg, "environment testnet") {
		t.Errorf("error should name the last environment tried: %q", msg)
	}
	if !strings.HasPrefix(out, "package alpha (a)\n") || strings.Contains(out, "beta") {
		t.Errorf("output before the failing root should be printed:\n%s", out)
	}
}

func TestModulesViewCache(t *testing.T) {
	requireShell(t)
	dir := twoPackages(t)
	cacheDir := t.TempDir()
	configDoc := catCompiler + fmt.Sprintf("\n[cache]\ndir = %q\n", cacheDir)

	first, err := runCLI(t, configDoc, dir)
	if err != nil {
		t.Fatal(err)
	}

	// The compiler can no longer produce snapshots; the cache must.
	for _, p := range []string{"a", "b"} {
		if err := os.Remove(filepath.Join(dir, p, "snapshot.json")); err != nil {
			t.Fatal(err)
		}
	}
	second, err := runCLI(t, configDoc, dir)
	if err != nil {
		t.Fatalf("cached run: %v", err)
	}
	if first != second {
		t.Errorf("cached output differs:\n%s\nvs\n%s", second, first)
	}

	out, err := runCLI(t, configDoc, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", out, cacheDir)
	}

	out, err = runCLI(t, configDoc, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}

	if _, err := runCLI(t, configDoc, dir); err == nil {
		t.Error("expected compile failure after clearing the cache")
	}
}

func depsTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app", "Move.toml"), `
[package]
name = "app"

[dependencies]
left = { local = "../libs/left" }
right = { local = "../libs/right" }
`)
	writeFile(t, filepath.Join(dir, "libs", "left", "Move.toml"), `
[package]
name = "left"

[dependencies]
shared = { local = "../shared" }
`)
	writeFile(t, filepath.Join(dir, "libs", "right", "Move.toml"), `
[package]
name = "right"

[dependencies]
shared = { local = "../shared" }
ascii = { r.mvr = "@potatoes/ascii" }
`)
	writeFile(t, filepath.Join(dir, "libs", "shared", "Move.toml"), "[package]\nname = \"shared\"\n")
	return filepath.Join(dir, "app")
}

func TestDepsView(t *testing.T) {
	out, err := runCLI(t, "", "deps", depsTree(t), "--charset", "unicode")
	if err != nil {
		t.Fatal(err)
	}
	want := golden(`
		package app
		├── left
		│   └── shared
		└── right
		    ├── ascii (@potatoes/ascii)
		    └── shared (shared)
	`)
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestDepsViewNoDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Move.toml"), "[package]\nname = \"lonely\"\n")

	out, err := runCLI(t, "", "deps", filepath.Join(dir, "Move.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "package lonely\n`-- (no dependencies)\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestColorStripsToPlain(t *testing.T) {
	app := depsTree(t)

	plain, err := runCLI(t, "", "deps", app, "--no-color")
	if err != nil {
		t.Fatal(err)
	}
	colored, err := runCLI(t, "", "deps", app, "--color", "always")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("--color always produced no escape codes:\n%s", colored)
	}
	if got := ansi.Strip(colored); got != plain {
		t.Errorf("stripped output =\n%s\nwant\n%s", got, plain)
	}
}

func TestNoColorWins(t *testing.T) {
	out, err := runCLI(t, `color = "always"`, "deps", depsTree(t), "--no-color")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("--no-color output has escape codes:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		code   errors.Code
	}{
		{"no manifest", "", []string{"deps", t.TempDir()}, errors.ErrCodeManifestNotFound},
		{"missing path", "", []string{"deps", filepath.Join(t.TempDir(), "nope")}, errors.ErrCodeInvalidPath},
		{"bad charset flag", "", []string{"deps", ".", "--charset", "ebcdic"}, errors.ErrCodeInvalidConfig},
		{"bad color in config", `color = "rainbow"`, []string{"deps", "."}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.config, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	c := New(&stderr, LogDebug)

	err := errors.Wrap(errors.ErrCodeCompile, fmt.Errorf("exit status 1"), "failed to compile Move package at /p")
	if got := c.ExitCode(err); got != 1 {
		t.Errorf("ExitCode = %d, want 1", got)
	}
	out := stderr.String()
	if !strings.Contains(out, "code="+string(errors.ErrCodeCompile)) {
		t.Errorf("debug log should carry the error code:\n%s", out)
	}
	if !strings.HasSuffix(out, "error: failed to compile Move package at /p: exit status 1\n") {
		t.Errorf("stderr = %q", out)
	}

	stderr.Reset()
	if got := c.ExitCode(fmt.Errorf("render: %w", context.Canceled)); got != 130 {
		t.Errorf("ExitCode(canceled) = %d, want 130", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("interrupt should print nothing, got %q", stderr.String())
	}
}

func TestStylerRoles(t *testing.T) {
	s := newStyler(true)
	if got := s.Style(tree.RoleNone, "x"); got != "x" {
		t.Errorf("unstyled role changed text: %q", got)
	}
	styled := s.Style(tree.RolePackageKeyword, "package")
	if ansi.Strip(styled) != "package" || styled == "package" {
		t.Errorf("styled keyword = %q", styled)
	}
	if got := newStyler(false).Style(tree.RolePackageKeyword, "package"); got != "package" {
		t.Errorf("plain styler changed text: %q", got)
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	if !colorEnabled("always", &buf) {
		t.Error("always should enable color")
	}
	if colorEnabled("never", os.Stdout) {
		t.Error("never should disable color")
	}
	if colorEnabled("auto", &buf) {
		t.Error("auto should disable color for non-terminals")
	}
	t.Setenv("NO_COLOR", "1")
	if colorEnabled("auto", os.Stdout) {
		t.Error("NO_COLOR should disable color in auto mode")
	}
}

func TestDepsViewDOT(t *testing.T) {
	out, err := runCLI(t, "", "deps", depsTree(t), "--format", "dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph G {\n") {
		t.Errorf("output is not DOT:\n%s", out)
	}
	for _, edge := range []string{`"app" -> "left";`, `"left" -> "shared";`, `"right" -> "shared";`, `"right" -> "ascii";`} {
		if !strings.Contains(out, edge) {
			t.Errorf("missing edge %s in:\n%s", edge, out)
		}
	}
	if strings.Count(out, `"shared" [`) != 1 {
		t.Errorf("shared package should be one node:\n%s", out)
	}

	_, err = runCLI(t, "", "deps", depsTree(t), "--format", "png")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
