package cli

import (
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/kvsml"
)

func newConvertCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in.kvsml> <out.kvsml>",
		Short: "Rewrite a document with another array encoding",
		Long: `Read a KVSML document and write it again. External data files of the
output are placed next to it and named after it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			var err error
			if cfg.Encoding, err = stringFlag(cmd, "encoding", cfg.Encoding); err != nil {
				return err
			}
			if cfg.Compression, err = stringFlag(cmd, "compression", cfg.Compression); err != nil {
				return err
			}
			opts, err := cfg.WriterOptions()
			if err != nil {
				return err
			}
			opts = append(opts, kvsml.WithLogger(a.logger))

			in, out := args[0], args[1]
			obj, err := kvsml.Read(in, kvsml.WithReaderLogger(a.logger))
			if err != nil {
				return err
			}
			if err := kvsml.Write(out, obj, opts...); err != nil {
				return err
			}

			level.Info(a.logger).Log("msg", "converted document", "from", in, "to", out,
				"kind", obj.Kind(), "encoding", cfg.Encoding, "compression", cfg.Compression)

			return nil
		},
	}

	cmd.Flags().String("encoding", "inline", "Array encoding (inline, ascii, binary)")
	cmd.Flags().String("compression", "none", "Compression of binary data files (none, zstd, s2, lz4)")

	return cmd
}
