package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SilverFire/flysystem/internal/config"
	"github.com/SilverFire/flysystem/pkg/flysystem/local"
)

// app carries the state shared by subcommands: the configuration bound to
// the persistent flags and the adapter built from it before each command.
type app struct {
	cfg     *config.Config
	adapter *local.Adapter
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	a := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "flysystem",
		Short: "Operate on files below a confined root directory",
		Long: `flysystem runs filesystem operations through the local adapter.
Every path is relative to --root and cannot escape it. Symbolic links are
rejected unless --links=skip, and visibility maps to permission bits.

Defaults come from FLYSYSTEM_ROOT, FLYSYSTEM_LOCK, FLYSYSTEM_LINKS,
FLYSYSTEM_LOG_LEVEL, FLYSYSTEM_LOG_FORMAT and FLYSYSTEM_PERMISSIONS.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.Root, "root", cfg.Root, "root directory of the adapter")
	flags.StringVar(&cfg.Lock, "lock", cfg.Lock, "write lock mode (exclusive|none)")
	flags.StringVar(&cfg.Links, "links", cfg.Links, "symbolic link policy (disallow|skip)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace|debug|info|warn|error)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console|json)")
	flags.StringVar(&cfg.Permissions, "permissions", cfg.Permissions, "YAML or TOML permission table file")

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newWriteCommand(a))
	cmd.AddCommand(newReadCommand(a))
	cmd.AddCommand(newListCommand(a))
	cmd.AddCommand(newDeleteCommand(a))
	cmd.AddCommand(newDeleteDirCommand(a))
	cmd.AddCommand(newCreateDirCommand(a))
	cmd.AddCommand(newCopyCommand(a))
	cmd.AddCommand(newRenameCommand(a))
	cmd.AddCommand(newHasCommand(a))
	cmd.AddCommand(newStatCommand(a))
	cmd.AddCommand(newChmodCommand(a))

	return cmd
}

// setup validates the configuration and builds the adapter
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	logger, err := a.cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts, err := a.cfg.AdapterOptions()
	if err != nil {
		return err
	}
	opts = append(opts, local.WithLogger(logger))

	a.adapter, err = local.New(a.cfg.Root, opts...)
	return err
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of flysystem`,
		Args:  cobra.NoArgs,
		// no adapter needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flysystem version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
