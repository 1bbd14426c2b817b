package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/kvsml"
	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/digest"
	"github.com/arloliu/kvsml/object"
)

type field struct {
	name, value string
}

type namedArray struct {
	name string
	data array.AnyArray
}

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.kvsml>",
		Short: "Summarize a KVSML document",
		Long: `Print the object kind, its counts and attributes, and for every array
its element type, length, value range and digest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algName, err := stringFlag(cmd, "digest", a.cfg.Digest)
			if err != nil {
				return err
			}
			alg, err := digest.ParseAlgorithm(algName)
			if err != nil {
				return err
			}

			obj, err := kvsml.Read(args[0], kvsml.WithReaderLogger(a.logger))
			if err != nil {
				return err
			}

			return writeSummary(cmd.OutOrStdout(), args[0], obj, alg)
		},
	}

	cmd.Flags().String("digest", "xxhash", "Array digest algorithm (xxhash, blake3, murmur3)")

	return cmd
}

func writeSummary(out io.Writer, path string, obj object.Object, alg digest.Algorithm) error {
	fields, arrays := describe(obj)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", path)
	fmt.Fprintf(w, "kind\t%s\n", obj.Kind())
	for _, f := range fields {
		fmt.Fprintf(w, "%s\t%s\n", f.name, f.value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARRAY\tTYPE\tLEN\tMIN\tMAX\tDIGEST")
	for _, arr := range arrays {
		if arr.data.IsEmpty() {
			continue
		}
		sum, err := digest.Array(alg, arr.data)
		if err != nil {
			return err
		}
		lo, hi := arr.data.MinMax()
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			arr.name, arr.data.Type(), arr.data.Len(), formatFloat(lo), formatFloat(hi), sum)
	}

	return w.Flush()
}

func describe(obj object.Object) (fields []field, arrays []namedArray) {
	switch o := obj.(type) {
	case *object.PointObject:
		fields = []field{
			{"vertices", strconv.Itoa(o.NumberOfVertices())},
		}
		arrays = []namedArray{
			{"coords", o.Coords.Any()},
			{"colors", o.Colors.Any()},
			{"normals", o.Normals.Any()},
			{"sizes", o.Sizes.Any()},
		}
	case *object.LineObject:
		fields = []field{
			{"line_type", o.LineType.String()},
			{"color_type", o.ColorType.String()},
			{"vertices", strconv.Itoa(o.NumberOfVertices())},
			{"lines", strconv.Itoa(o.NumberOfLines())},
		}
		arrays = []namedArray{
			{"coords", o.Coords.Any()},
			{"colors", o.Colors.Any()},
			{"sizes", o.Sizes.Any()},
			{"connections", o.Connections.Any()},
		}
	case *object.PolygonObject:
		fields = []field{
			{"polygon_type", o.PolygonType.String()},
			{"color_type", o.ColorType.String()},
			{"normal_type", o.NormalType.String()},
			{"vertices", strconv.Itoa(o.NumberOfVertices())},
			{"polygons", strconv.Itoa(o.NumberOfPolygons())},
		}
		arrays = []namedArray{
			{"coords", o.Coords.Any()},
			{"colors", o.Colors.Any()},
			{"normals", o.Normals.Any()},
			{"connections", o.Connections.Any()},
			{"opacities", o.Opacities.Any()},
		}
	case *object.StructuredVolumeObject:
		fields = []field{
			{"grid_type", o.GridType.String()},
			{"resolution", fmt.Sprintf("%d %d %d", o.Resolution[0], o.Resolution[1], o.Resolution[2])},
			{"veclen", strconv.Itoa(o.Veclen)},
			{"nodes", strconv.Itoa(o.NumberOfNodes())},
			{"range", formatRange(o.Range)},
		}
		arrays = []namedArray{
			{"values", o.Values},
			{"coords", o.Coords.Any()},
		}
	case *object.UnstructuredVolumeObject:
		fields = []field{
			{"cell_type", o.CellType.String()},
			{"veclen", strconv.Itoa(o.Veclen)},
			{"nodes", strconv.Itoa(o.NumberOfNodes())},
			{"cells", strconv.Itoa(o.NumberOfCells())},
			{"range", formatRange(o.Range)},
		}
		arrays = []namedArray{
			{"values", o.Values},
			{"coords", o.Coords.Any()},
			{"connections", o.Connections.Any()},
		}
	case *object.ImageObject:
		fields = []field{
			{"width", strconv.Itoa(o.Width)},
			{"height", strconv.Itoa(o.Height)},
			{"pixel_type", o.PixelType.String()},
		}
		arrays = []namedArray{
			{"pixels", o.Pixels.Any()},
		}
	case *object.TransferFunction:
		fields = []field{
			{"resolution", strconv.Itoa(o.Resolution)},
			{"range", formatRange(o.Range)},
		}
		arrays = []namedArray{
			{"colors", o.Colors.Any()},
			{"opacities", o.Opacities.Any()},
		}
	}

	return fields, arrays
}

func formatRange(r object.ValueRange) string {
	if !r.Set {
		return "unset"
	}

	return formatFloat(r.Min) + " " + formatFloat(r.Max)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
