package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/karrick/godirwalk"
	"github.com/spf13/cobra"

	"github.com/arloliu/kvsml"
	"github.com/arloliu/kvsml/object"
)

func newScanCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the KVSML documents under a directory",
		Long: `Walk a directory tree in lexical order and report the object kind of
every document found. Unreadable documents are logged and counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := cmd.Flags().GetString("ext")
			if err != nil {
				return fmt.Errorf("failed to get ext: %w", err)
			}
			full, err := cmd.Flags().GetBool("read")
			if err != nil {
				return fmt.Errorf("failed to get read flag: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tKIND")

			var found, failed int
			err = godirwalk.Walk(args[0], &godirwalk.Options{
				Callback: func(path string, de *godirwalk.Dirent) error {
					if !de.IsRegular() || filepath.Ext(path) != ext {
						return nil
					}
					found++

					kind, err := a.probe(path, full)
					if err != nil {
						failed++
						level.Warn(a.logger).Log("msg", "unreadable document", "path", path, "err", err)
						fmt.Fprintf(w, "%s\t-\n", path)

						return nil
					}
					fmt.Fprintf(w, "%s\t%s\n", path, kind)

					return nil
				},
				ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
					level.Warn(a.logger).Log("msg", "skipping path", "path", path, "err", err)
					return godirwalk.SkipNode
				},
				Unsorted: false,
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", args[0], err)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d documents, %d unreadable\n", found, failed)

			return nil
		},
	}

	cmd.Flags().String("ext", ".kvsml", "Extension of the files to check")
	cmd.Flags().Bool("read", false, "Load every array instead of only detecting the kind")

	return cmd
}

// probe detects the kind of the document at path. With full set the whole
// object is loaded so missing or short data files are reported too.
func (a *app) probe(path string, full bool) (object.Kind, error) {
	if !full {
		return kvsml.Detect(path)
	}

	obj, err := kvsml.Read(path, kvsml.WithReaderLogger(a.logger))
	if err != nil {
		return 0, err
	}

	return obj.Kind(), nil
}
