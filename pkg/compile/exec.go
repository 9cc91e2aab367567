package compile

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mcxross/sui/pkg/bytecode"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
)

// Snapshot formats understood by Decode.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// DefaultCommand is the compiler invocation used when none is configured.
// Placeholders are substituted per call by Expand.
var DefaultCommand = []string{"move-compile", "--path", "{path}", "--env", "{env}", "--format", "json"}

// ExecCompiler runs an external command that compiles the package and
// writes a snapshot of it to stdout.
type ExecCompiler struct {
	// Command is the argv template; see Expand. Empty means DefaultCommand.
	Command []string
	// Format of the snapshot on stdout; empty means FormatJSON.
	Format string
	// Logger receives debug messages (optional).
	Logger func(string, ...any)
}

// Compile implements Compiler.
func (c *ExecCompiler) Compile(ctx context.Context, root string, env manifest.Environment) (*bytecode.Package, error) {
	argv := Expand(c.command(), root, env)
	if c.Logger != nil {
		c.Logger("exec %s", strings.Join(argv, " "))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = root
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeCompile, err, "%s: %s", argv[0], msg)
		}
		return nil, errors.Wrap(errors.ErrCodeCompile, err, "%s", argv[0])
	}

	return Decode(stdout.Bytes(), c.Format)
}

func (c *ExecCompiler) command() []string {
	if len(c.Command) == 0 {
		return DefaultCommand
	}
	return c.Command
}

// Expand substitutes {path}, {env} and {chain_id} in each argument.
func Expand(command []string, root string, env manifest.Environment) []string {
	r := strings.NewReplacer("{path}", root, "{env}", env.Name, "{chain_id}", env.ChainID)
	out := make([]string, len(command))
	for i, arg := range command {
		out[i] = r.Replace(arg)
	}
	return out
}

// Decode parses a package snapshot and validates its handle tables.
func Decode(data []byte, format string) (*bytecode.Package, error) {
	var pkg bytecode.Package
	switch format {
	case "", FormatJSON:
		if err := json.Unmarshal(data, &pkg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCompile, err, "decode json snapshot")
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &pkg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCompile, err, "decode msgpack snapshot")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown snapshot format %q", format)
	}
	if err := pkg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCompile, err, "invalid snapshot")
	}
	return &pkg, nil
}
