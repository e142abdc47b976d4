package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
)

func newStatCommand(a *app) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "stat <path>",
		Short: "Print metadata of a path",
		Long:  "Print metadata as JSON, or a single field with --field (size|timestamp|mimetype|visibility).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			switch field {
			case "":
				meta, err := a.adapter.GetMetadata(path)
				if err != nil {
					return err
				}
				return printJSON(out, meta)
			case "size":
				meta, err := a.adapter.GetSize(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, *meta.Size)
			case "timestamp":
				meta, err := a.adapter.GetTimestamp(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, *meta.Timestamp)
			case "mimetype":
				meta, err := a.adapter.GetMimetype(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, meta.Mimetype)
			case "visibility":
				meta, err := a.adapter.GetVisibility(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, meta.Visibility)
			default:
				return fmt.Errorf("unknown field %q", field)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "print only this field")

	return cmd
}

func newChmodCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chmod <path> <public|private>",
		Short: "Set the visibility of a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := core.ParseVisibility(args[1])
			if err != nil {
				return err
			}
			_, err = a.adapter.SetVisibility(args[0], v)
			return err
		},
	}
}
