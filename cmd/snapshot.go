package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Litote/kgenerator/pkg/action/snapshot"
	"github.com/Litote/kgenerator/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	// snapshotCmd represents the kgenerator snapshot command
	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "manage model snapshots",
		Long:  "Record the discovered model and compare it with earlier recordings",
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", manifest.DefaultPath, "manifest file recording the snapshots")

	var flags *generationFlags
	createCmd := &cobra.Command{
		Use:   "create <name> <version>",
		Short: "run the generators and record the model as version",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			file, err := snapshot.Create(c.Context(), opts, manifestPath, args[0], args[1], reporter(opts))
			if err != nil {
				return err
			}
			slog.With("file", file, "version", args[1]).Info("snapshot recorded")
			return nil
		},
	}
	flags = newGenerationFlags(createCmd.Flags())

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list the recorded snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tCLASSES\tFILE\t")
			for _, s := range m.Snapshots {
				marker := ""
				switch s.Version {
				case m.CurrentVersion:
					marker = " (current)"
				case m.PreviousVersion:
					marker = " (previous)"
				}
				fmt.Fprintf(w, "%s\t%s%s\t%d\t%s\t\n", s.Name, s.Version, marker, len(s.Classes), s.File)
			}
			return w.Flush()
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "compare the current snapshot with the previous one",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if errors.Is(err, snapshot.ErrNoPrevious) {
				fmt.Fprintln(c.OutOrStdout(), "nothing to compare, record two versions first")
				return nil
			}
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(c.OutOrStdout(), "no changes")
				return nil
			}
			fmt.Fprint(c.OutOrStdout(), diff)
			return nil
		},
	}

	snapshotCmd.AddCommand(createCmd, listCmd, diffCmd)
	return snapshotCmd
}
