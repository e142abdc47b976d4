package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
)

func newWriteCommand(a *app) *cobra.Command {
	var (
		visibility string
		update     bool
	)

	cmd := &cobra.Command{
		Use:   "write <path> [content|-]",
		Short: "Write a file",
		Long:  "Write content to a file, creating parent directories. Without content, or with -, stdin is streamed.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := core.Config{}
			if visibility != "" {
				v, err := core.ParseVisibility(visibility)
				if err != nil {
					return err
				}
				cfg[core.OptionVisibility] = v
			}

			var (
				meta core.Metadata
				err  error
			)
			switch {
			case len(args) == 2 && args[1] != "-" && update:
				meta, err = a.adapter.Update(args[0], []byte(args[1]), cfg)
			case len(args) == 2 && args[1] != "-":
				meta, err = a.adapter.Write(args[0], []byte(args[1]), cfg)
			case update:
				meta, err = a.adapter.UpdateStream(args[0], cmd.InOrStdin(), cfg)
			default:
				meta, err = a.adapter.WriteStream(args[0], cmd.InOrStdin(), cfg)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", meta.Path, *meta.Size)
			return nil
		},
	}

	cmd.Flags().StringVar(&visibility, "visibility", "", "visibility of the file (public|private)")
	cmd.Flags().BoolVar(&update, "update", false, "update an existing file and report its mimetype")

	return cmd
}

func newReadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := a.adapter.ReadStream(args[0])
			if err != nil {
				return err
			}
			defer meta.Stream.Close()

			_, err = io.Copy(cmd.OutOrStdout(), meta.Stream)
			return err
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adapter.Delete(args[0])
		},
	}
}

func newCopyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <path> <newpath>",
		Short: "Copy a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adapter.Copy(args[0], args[1])
		},
	}
}

func newRenameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <path> <newpath>",
		Short: "Rename a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adapter.Rename(args[0], args[1])
		},
	}
}

func newHasCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "has <path>",
		Short: "Report whether a path exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.adapter.Has(args[0]))
			return nil
		},
	}
}
