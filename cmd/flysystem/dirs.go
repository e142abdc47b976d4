package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
)

func newListCommand(a *app) *cobra.Command {
	var (
		recursive bool
		match     string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List directory contents",
		Long:  "List the entries of a directory. --match filters paths with a ** glob.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			if match != "" && !doublestar.ValidatePattern(match) {
				return fmt.Errorf("invalid pattern %q", match)
			}

			list, err := a.adapter.ListContents(dir, recursive)
			if err != nil {
				return err
			}
			list, err = filterEntries(list, match)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), list)
			}
			for _, m := range list {
				size := "-"
				if m.Size != nil {
					size = fmt.Sprint(*m.Size)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %10s %s\n", m.Type, size, m.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "list subdirectories recursively")
	cmd.Flags().StringVar(&match, "match", "", "only show paths matching this glob (e.g. **/*.txt)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	return cmd
}

// filterEntries keeps the entries whose path matches pattern; an empty
// pattern keeps everything.
func filterEntries(list []core.Metadata, pattern string) ([]core.Metadata, error) {
	if pattern == "" {
		return list, nil
	}
	kept := make([]core.Metadata, 0, len(list))
	for _, m := range list {
		ok, err := doublestar.Match(pattern, m.Path)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

func newCreateDirCommand(a *app) *cobra.Command {
	var visibility string

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory and its parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.Config{}
			if visibility != "" {
				v, err := core.ParseVisibility(visibility)
				if err != nil {
					return err
				}
				cfg[core.OptionVisibility] = v
			}
			_, err := a.adapter.CreateDir(args[0], cfg)
			return err
		},
	}

	cmd.Flags().StringVar(&visibility, "visibility", "", "visibility of created directories (public|private)")

	return cmd
}

func newDeleteDirCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir <path>",
		Short: "Delete a directory recursively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adapter.DeleteDir(args[0])
		},
	}
}
