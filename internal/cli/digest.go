package cli

import (
	"fmt"
	"runtime"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/kvsml/digest"
)

func newDigestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest <file>...",
		Short: "Fingerprint data files",
		Long: `Print the digest of every file, in argument order. Uncompressed binary
data files hash to the same value as the array digest printed by inspect.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algName, err := stringFlag(cmd, "algorithm", a.cfg.Digest)
			if err != nil {
				return err
			}
			alg, err := digest.ParseAlgorithm(algName)
			if err != nil {
				return err
			}
			workers, err := cmd.Flags().GetInt("workers")
			if err != nil {
				return fmt.Errorf("failed to get workers: %w", err)
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			sums, err := digestFiles(cmd, alg, workers, args)
			if err != nil {
				return err
			}

			for i, path := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sums[i], path)
			}
			level.Debug(a.logger).Log("msg", "digested files", "count", len(args), "algorithm", alg)

			return nil
		},
	}

	cmd.Flags().String("algorithm", "xxhash", "Digest algorithm (xxhash, blake3, murmur3)")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of files hashed concurrently (0 = auto)")

	return cmd
}

func digestFiles(cmd *cobra.Command, alg digest.Algorithm, workers int, paths []string) ([]string, error) {
	sums := make([]string, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := digest.File(alg, path)
			if err != nil {
				return err
			}
			sums[i] = sum

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sums, nil
}
