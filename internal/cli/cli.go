package cli
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mcxross/sui/pkg/buildinfo"
	"github.com/mcxross/sui/pkg/config"
	"github.com/mcxross/sui/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives the rendered trees.
	Out io.Writer
	// Err receives progress output; it is the logger's writer.
	Err io.Writer

	flags flags
}

// flags are the persistent command-line flags. They override the config
// file only when set explicitly.
type flags struct {
	configPath string
	color      string
	noColor    bool
	charset    string
	jobs       int
	noCache    bool
	pick       bool
}

// New creates a new CLI instance logging to w and printing to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// ExitCode reports a failed command and returns the process exit status:
// 130 when interrupted, 1 otherwise. The message goes to Err as a single
// "error: ..." line; the error code is logged at debug level.
func (c *CLI) ExitCode(err error) int {
	if stderrors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	if code := errors.GetCode(err); code != "" {
		c.Logger.Debug("Command failed", "code", code)
	}
	fmt.Fprintln(c.Err, "error: "+errors.Describe(err))
	return 1
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand it renders the modules view.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [path]",
		Short: "Print the public API and dependencies of Move packages as trees",
		Long: `move-tree renders human-readable trees of Move packages.

Every directory under path that contains a Move.toml is treated as a
package root. The modules view (default) compiles each package and lists
its modules and their public functions with fully formatted signatures.
The deps view lists the transitive dependencies declared in Move.toml.`,
		Version:           buildinfo.Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completePackageDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runModules(cmd, pathArg(args))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/move-tree/config.toml)")
	pf.StringVar(&c.flags.color, "color", config.ColorAuto, "colorize output: auto, always, never")
	pf.BoolVar(&c.flags.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&c.flags.charset, "charset", config.CharsetASCII, "tree characters: ascii, unicode")
	pf.IntVarP(&c.flags.jobs, "jobs", "j", 0, "packages to compile in parallel (0 = number of CPUs)")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "do not read or write the snapshot cache")
	pf.BoolVar(&c.flags.pick, "pick", false, "choose one package interactively when several are found")

	_ = root.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{config.ColorAuto, config.ColorAlways, config.ColorNever}, cobra.ShellCompDirectiveNoFileComp))
	_ = root.RegisterFlagCompletionFunc("charset", cobra.FixedCompletions(
		[]string{config.CharsetASCII, config.CharsetUnicode}, cobra.ShellCompDirectiveNoFileComp))

	// Register all subcommands
	root.AddCommand(c.modulesCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// settings loads the config file and applies explicitly set flags.
func (c *CLI) settings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("color") {
		cfg.Color = c.flags.color
	}
	if c.flags.noColor {
		cfg.Color = config.ColorNever
	}
	if changed("charset") {
		cfg.Charset = c.flags.charset
	}
	if changed("jobs") {
		cfg.Jobs = c.flags.jobs
	}
	if c.flags.noCache {
		cfg.Cache.Enabled = false
	}

	return cfg, cfg.Validate()
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// completePackageDirs completes directory names for the path argument.
func completePackageDirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
