package kvsml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/object"
)

var writerVariants = map[string][]WriterOption{
	"inline": nil,
	"ascii":  {WithEncoding(format.EncodingExternalAscii)},
	"binary": {WithEncoding(format.EncodingExternalBinary)},
	"zstd":   {WithEncoding(format.EncodingExternalBinary), WithCompression(format.CompressionZstd)},
	"lz4":    {WithEncoding(format.EncodingExternalBinary), WithCompression(format.CompressionLZ4)},
}

func docPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// TestPointObject_RoundTrip verifies a point cloud survives every encoding
func TestPointObject_RoundTrip(t *testing.T) {
	in := &object.PointObject{
		Coords:  array.Of[float32](0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1),
		Colors:  array.Of[uint8](255, 0, 0, 0, 255, 0, 0, 0, 255, 10, 20, 30),
		Normals: array.Of[float32](0, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0, 0),
		Sizes:   array.Of[float32](1, 2, 3, 4.5),
	}

	for name, opts := range writerVariants {
		t.Run(name, func(t *testing.T) {
			path := docPath(t, "points.kvsml")
			require.NoError(t, WritePointObject(path, in, opts...))

			out, err := ReadPointObject(path)
			require.NoError(t, err)
			require.Equal(t, in.Coords.Values(), out.Coords.Values())
			require.Equal(t, in.Colors.Values(), out.Colors.Values())
			require.Equal(t, in.Normals.Values(), out.Normals.Values())
			require.Equal(t, in.Sizes.Values(), out.Sizes.Values())
		})
	}
}

// TestPointObject_Defaults verifies absent colors and sizes read back as defaults
func TestPointObject_Defaults(t *testing.T) {
	path := docPath(t, "bare.kvsml")
	in := &object.PointObject{Coords: array.Of[float32](1, 2, 3, 4, 5, 6)}
	require.NoError(t, WritePointObject(path, in, WithEncoding(format.EncodingExternalBinary)))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 2, "document and coord file only")

	out, err := ReadPointObject(path)
	require.NoError(t, err)
	require.Equal(t, []uint8{255, 255, 255}, out.Colors.Values())
	require.Equal(t, []float32{1}, out.Sizes.Values())
	require.Equal(t, 0, out.Normals.Len())
	require.NoError(t, out.Validate())
}

// TestWritePointObject_Layout verifies the document skeleton and external file naming
func TestWritePointObject_Layout(t *testing.T) {
	path := docPath(t, "mesh.kvsml")
	in := &object.PointObject{
		Coords: array.Of[float32](0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3),
		Colors: array.Of[uint8](0, 0, 0),
	}
	require.NoError(t, WritePointObject(path, in, WithEncoding(format.EncodingExternalBinary), WithVersion("2.0")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(raw)
	require.Contains(t, doc, `<KVSML version="2.0">`)
	require.Contains(t, doc, `<Object type="PointObject">`)
	require.Contains(t, doc, `<Vertex nvertices="4">`)
	require.Contains(t, doc, `<DataArray type="float" format="binary" file="mesh_coord.dat"></DataArray>`)
	require.Contains(t, doc, `<DataValue type="uchar">0 0 0</DataValue>`)

	coord, err := os.ReadFile(filepath.Join(filepath.Dir(path), "mesh_coord.dat"))
	require.NoError(t, err)
	require.Len(t, coord, 48)
}

// TestLineObject_RoundTrip covers every line type
func TestLineObject_RoundTrip(t *testing.T) {
	coords := array.Of[float32](0, 0, 0, 1, 0, 0, 2, 0, 0, 3, 0, 0, 4, 0, 0, 5, 0, 0)
	tests := map[string]*object.LineObject{
		"strip": {
			LineType: object.LineStrip, ColorType: object.ColorPerLine, Coords: coords,
			Colors: array.New[uint8](15),
		},
		"uniline": {
			LineType: object.LineUniline, ColorType: object.ColorPerVertex, Coords: coords,
			Connections: array.Of[uint32](5, 3, 1, 0),
		},
		"polyline": {
			LineType: object.LinePolyline, ColorType: object.ColorPerLine, Coords: coords,
			Connections: array.Of[uint32](0, 2, 3, 5),
			Colors:      array.Of[uint8](1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4),
		},
		"segment": {
			LineType: object.LineSegment, ColorType: object.ColorPerVertex, Coords: coords,
			Connections: array.Of[uint32](0, 1, 2, 3, 4, 5),
			Sizes:       array.Of[float32](2),
		},
	}

	for name, in := range tests {
		for variant, opts := range writerVariants {
			t.Run(name+"/"+variant, func(t *testing.T) {
				path := docPath(t, "lines.kvsml")
				require.NoError(t, WriteLineObject(path, in, opts...))

				out, err := ReadLineObject(path)
				require.NoError(t, err)
				require.Equal(t, in.LineType, out.LineType)
				require.Equal(t, in.ColorType, out.ColorType)
				require.Equal(t, in.Coords.Values(), out.Coords.Values())
				require.Equal(t, in.Connections.Len(), out.Connections.Len())
				if in.Connections.Len() > 0 {
					require.Equal(t, in.Connections.Values(), out.Connections.Values())
				}
				if in.Colors.Len() > 0 {
					require.Equal(t, in.Colors.Values(), out.Colors.Values())
				}
				if in.Sizes.Len() > 0 {
					require.Equal(t, in.Sizes.Values(), out.Sizes.Values())
				}
				require.NoError(t, out.Validate())
			})
		}
	}
}

// TestPolygonObject_RoundTrip verifies meshes with and without connectivity
func TestPolygonObject_RoundTrip(t *testing.T) {
	indexed := &object.PolygonObject{
		PolygonType: object.Triangle,
		ColorType:   object.ColorPerPolygon,
		NormalType:  object.NormalPerVertex,
		Coords:      array.Of[float32](0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0),
		Connections: array.Of[uint32](0, 1, 2, 0, 2, 3),
		Colors:      array.Of[uint8](255, 0, 0, 0, 0, 255),
		Normals:     array.Of[float32](0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1),
		Opacities:   array.Of[uint8](128, 64),
	}
	soup := &object.PolygonObject{
		PolygonType: object.Quadrangle,
		ColorType:   object.ColorPerVertex,
		NormalType:  object.NormalPerPolygon,
		Coords:      array.Of[float32](0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0),
		Normals:     array.Of[float32](0, 0, 1),
	}

	for variant, opts := range writerVariants {
		t.Run("indexed/"+variant, func(t *testing.T) {
			path := docPath(t, "tri.kvsml")
			require.NoError(t, WritePolygonObject(path, indexed, opts...))

			out, err := ReadPolygonObject(path)
			require.NoError(t, err)
			require.Equal(t, indexed.Connections.Values(), out.Connections.Values())
			require.Equal(t, indexed.Colors.Values(), out.Colors.Values())
			require.Equal(t, indexed.Normals.Values(), out.Normals.Values())
			require.Equal(t, indexed.Opacities.Values(), out.Opacities.Values())
			require.Equal(t, 2, out.NumberOfPolygons())
		})

		t.Run("soup/"+variant, func(t *testing.T) {
			path := docPath(t, "quad.kvsml")
			require.NoError(t, WritePolygonObject(path, soup, opts...))

			out, err := ReadPolygonObject(path)
			require.NoError(t, err)
			require.Equal(t, object.Quadrangle, out.PolygonType)
			require.Equal(t, 0, out.Connections.Len())
			require.Equal(t, 0, out.Opacities.Len())
			require.Equal(t, soup.Normals.Values(), out.Normals.Values())
			require.Equal(t, 1, out.NumberOfPolygons())
		})
	}
}

// TestStructuredVolumeObject_RoundTrip verifies value types and grid coordinates are kept
func TestStructuredVolumeObject_RoundTrip(t *testing.T) {
	values := make([]uint16, 4*3*2)
	for i := range values {
		values[i] = uint16(i * 100)
	}

	tests := map[string]*object.StructuredVolumeObject{
		"uniform": {
			GridType: object.GridUniform, Resolution: [3]int{4, 3, 2}, Veclen: 1,
			Values: array.Wrap(values).Any(),
		},
		"rectilinear": {
			GridType: object.GridRectilinear, Resolution: [3]int{4, 3, 2}, Veclen: 1,
			Values: array.Wrap(values).Any(),
			Coords: array.Of[float32](0, 1, 2, 4, 0, 0.5, 1, 0, 10),
			Range:  object.ValueRange{Min: -1, Max: 5000, Set: true},
		},
		"curvilinear vector": {
			GridType: object.GridCurvilinear, Resolution: [3]int{2, 2, 1}, Veclen: 3,
			Values: array.Of[float64](1, 0, 0, 0, 1, 0, 0, 0, 1, 0.5, 0.5, 0).Any(),
			Coords: array.Of[float32](0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0),
		},
	}

	for name, in := range tests {
		for variant, opts := range writerVariants {
			t.Run(name+"/"+variant, func(t *testing.T) {
				path := docPath(t, "volume.kvsml")
				require.NoError(t, WriteStructuredVolumeObject(path, in, opts...))

				out, err := ReadStructuredVolumeObject(path)
				require.NoError(t, err)
				require.Equal(t, in.GridType, out.GridType)
				require.Equal(t, in.Resolution, out.Resolution)
				require.Equal(t, in.Veclen, out.Veclen)
				require.Equal(t, in.Values.Type(), out.Values.Type(), "field keeps its element type")
				require.Equal(t, in.Values.Bytes(), out.Values.Bytes())
				require.Equal(t, in.Coords.Len(), out.Coords.Len())
				require.True(t, out.Range.Set)
				if in.Range.Set {
					require.Equal(t, in.Range, out.Range)
				} else {
					require.Equal(t, object.RangeOf(in.Values), out.Range)
				}
			})
		}
	}
}

// TestUnstructuredVolumeObject_RoundTrip verifies node and cell arrays
func TestUnstructuredVolumeObject_RoundTrip(t *testing.T) {
	in := &object.UnstructuredVolumeObject{
		CellType:    object.CellTetrahedra,
		Veclen:      1,
		Coords:      array.Of[float32](0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1),
		Values:      array.Of[float32](0.1, 0.2, 0.3, 0.4, 0.5).Any(),
		Connections: array.Of[uint32](0, 1, 2, 3, 1, 2, 3, 4),
	}

	for variant, opts := range writerVariants {
		t.Run(variant, func(t *testing.T) {
			path := docPath(t, "tet.kvsml")
			require.NoError(t, WriteUnstructuredVolumeObject(path, in, opts...))

			out, err := ReadUnstructuredVolumeObject(path)
			require.NoError(t, err)
			require.Equal(t, object.CellTetrahedra, out.CellType)
			require.Equal(t, in.Coords.Values(), out.Coords.Values())
			require.Equal(t, in.Values.Bytes(), out.Values.Bytes())
			require.Equal(t, in.Connections.Values(), out.Connections.Values())
			require.Equal(t, 2, out.NumberOfCells())
			require.NoError(t, out.Validate())
		})
	}
}

// TestVolume_SingleNodeKeepsType checks that a one-record field, stored as
// <DataValue>, is read back with the element type it was written with
func TestVolume_SingleNodeKeepsType(t *testing.T) {
	for variant, opts := range writerVariants {
		t.Run("structured/"+variant, func(t *testing.T) {
			in := &object.StructuredVolumeObject{
				GridType: object.GridUniform, Resolution: [3]int{1, 1, 1}, Veclen: 1,
				Values: array.Of[int16](-7).Any(),
			}
			path := docPath(t, "point.kvsml")
			require.NoError(t, WriteStructuredVolumeObject(path, in, opts...))

			out, err := ReadStructuredVolumeObject(path)
			require.NoError(t, err)
			require.Equal(t, format.TypeInt16, out.Values.Type())
			v, ok := array.Values[int16](out.Values)
			require.True(t, ok)
			require.Equal(t, []int16{-7}, v)
			require.Equal(t, object.ValueRange{Min: -7, Max: -7, Set: true}, out.Range)
		})

		t.Run("unstructured/"+variant, func(t *testing.T) {
			in := &object.UnstructuredVolumeObject{
				CellType:    object.CellPoint,
				Veclen:      2,
				Coords:      array.Of[float32](1, 2, 3),
				Values:      array.Of[uint64](1<<40, 3).Any(),
				Connections: array.Of[uint32](0),
			}
			path := docPath(t, "single.kvsml")
			require.NoError(t, WriteUnstructuredVolumeObject(path, in, opts...))

			out, err := ReadUnstructuredVolumeObject(path)
			require.NoError(t, err)
			require.Equal(t, format.TypeUInt64, out.Values.Type())
			require.Equal(t, in.Values.Bytes(), out.Values.Bytes())
			require.Equal(t, in.Coords.Values(), out.Coords.Values())
			require.Equal(t, []uint32{0}, out.Connections.Values())
		})
	}
}

// TestImageObject_RoundTrip verifies pixel data of gray and color images
func TestImageObject_RoundTrip(t *testing.T) {
	pixels := make([]uint8, 4*3*3)
	for i := range pixels {
		pixels[i] = uint8(i * 7)
	}
	in := &object.ImageObject{Width: 4, Height: 3, PixelType: object.PixelColor24, Pixels: array.Wrap(pixels)}

	for variant, opts := range writerVariants {
		t.Run(variant, func(t *testing.T) {
			path := docPath(t, "image.kvsml")
			require.NoError(t, WriteImageObject(path, in, opts...))

			out, err := ReadImageObject(path)
			require.NoError(t, err)
			require.Equal(t, 4, out.Width)
			require.Equal(t, 3, out.Height)
			require.Equal(t, object.PixelColor24, out.PixelType)
			require.Equal(t, pixels, out.Pixels.Values())
		})
	}
}

// TestTransferFunction_RoundTrip verifies the transfer function sits under the root
func TestTransferFunction_RoundTrip(t *testing.T) {
	in := object.NewTransferFunction(16)
	in.Range = object.ValueRange{Min: 0, Max: 255, Set: true}

	for variant, opts := range writerVariants {
		t.Run(variant, func(t *testing.T) {
			path := docPath(t, "tfunc.kvsml")
			require.NoError(t, WriteTransferFunction(path, in, opts...))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			require.NotContains(t, string(raw), "<Object")

			out, err := ReadTransferFunction(path)
			require.NoError(t, err)
			require.Equal(t, 16, out.Resolution)
			require.Equal(t, in.Colors.Values(), out.Colors.Values())
			require.Equal(t, in.Opacities.Values(), out.Opacities.Values())
			require.Equal(t, in.Range, out.Range)
		})
	}
}

// TestReadWrite_Generic verifies kind detection and dispatch
func TestReadWrite_Generic(t *testing.T) {
	objects := []object.Object{
		&object.PointObject{Coords: array.Of[float32](0, 0, 0, 1, 1, 1)},
		&object.ImageObject{Width: 2, Height: 2, PixelType: object.PixelGray8, Pixels: array.Of[uint8](0, 1, 2, 3)},
		object.NewTransferFunction(4),
	}

	for _, in := range objects {
		t.Run(in.Kind().String(), func(t *testing.T) {
			path := docPath(t, "any.kvsml")
			require.NoError(t, Write(path, in))

			kind, err := Detect(path)
			require.NoError(t, err)
			require.Equal(t, in.Kind(), kind)

			out, err := Read(path)
			require.NoError(t, err)
			require.Equal(t, in.Kind(), out.Kind())
		})
	}
}

func TestRead_WrongKind(t *testing.T) {
	path := docPath(t, "points.kvsml")
	require.NoError(t, WritePointObject(path, &object.PointObject{Coords: array.Of[float32](0, 0, 0, 1, 1, 1)}))

	_, err := ReadLineObject(path)
	require.ErrorIs(t, err, errs.ErrUnsupportedObject)
}

func TestRead_Errors(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := docPath(t, "bad.kvsml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		return path
	}

	t.Run("missing document", func(t *testing.T) {
		_, err := ReadPointObject(docPath(t, "none.kvsml"))
		require.ErrorIs(t, err, errs.ErrFileNotFound)
	})

	t.Run("not kvsml", func(t *testing.T) {
		_, err := Detect(write(t, `<svg></svg>`))
		require.ErrorIs(t, err, errs.ErrMalformedDocument)
	})

	t.Run("unknown object", func(t *testing.T) {
		_, err := Read(write(t, `<KVSML><Object type="TetraObject"/></KVSML>`))
		require.ErrorIs(t, err, errs.ErrUnsupportedObject)
	})

	t.Run("missing vertex", func(t *testing.T) {
		_, err := ReadPointObject(write(t, `<KVSML><Object type="PointObject"><PointObject/></Object></KVSML>`))
		require.ErrorIs(t, err, errs.ErrMissingTag)
	})

	t.Run("missing nvertices", func(t *testing.T) {
		_, err := ReadPointObject(write(t, `<KVSML><Object type="PointObject"><PointObject><Vertex/></PointObject></Object></KVSML>`))
		require.ErrorIs(t, err, errs.ErrMissingAttribute)
	})

	t.Run("missing coord", func(t *testing.T) {
		_, err := ReadPointObject(write(t, `<KVSML><Object type="PointObject"><PointObject><Vertex nvertices="2"/></PointObject></Object></KVSML>`))
		require.ErrorIs(t, err, errs.ErrMissingTag)
	})

	t.Run("short coord", func(t *testing.T) {
		_, err := ReadPointObject(write(t, `<KVSML><Object type="PointObject"><PointObject><Vertex nvertices="2">
			<Coord><DataArray type="float">0 0 0 1 1</DataArray></Coord></Vertex></PointObject></Object></KVSML>`))
		require.ErrorIs(t, err, errs.ErrMalformedArray)
	})

	t.Run("missing external file", func(t *testing.T) {
		_, err := ReadPointObject(write(t, `<KVSML><Object type="PointObject"><PointObject><Vertex nvertices="2">
			<Coord><DataArray type="float" format="binary" file="gone.dat"/></Coord></Vertex></PointObject></Object></KVSML>`))
		require.ErrorIs(t, err, errs.ErrFileNotFound)
	})

	t.Run("bad line type", func(t *testing.T) {
		_, err := ReadLineObject(write(t, `<KVSML><Object type="LineObject"><LineObject line_type="zigzag" color_type="vertex"/></Object></KVSML>`))
		require.ErrorIs(t, err, errs.ErrInvalidAttribute)
	})
}

func TestWrite_InvalidObject(t *testing.T) {
	path := docPath(t, "bad.kvsml")
	err := WritePointObject(path, &object.PointObject{Coords: array.Of[float32](1, 2)})
	require.ErrorIs(t, err, errs.ErrInvalidObject)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "nothing is written for an invalid object")
}

func TestWriterConfig(t *testing.T) {
	cfg, err := NewWriterConfig()
	require.NoError(t, err)
	require.Equal(t, format.EncodingInline, cfg.Encoding())
	require.Equal(t, format.CompressionNone, cfg.Compression())
	require.Equal(t, DefaultVersion, cfg.Version())

	_, err = NewWriterConfig(WithEncoding(format.Encoding(0x9)))
	require.ErrorIs(t, err, errs.ErrUnknownFormat)

	_, err = NewWriterConfig(WithCompression(format.CompressionType(0x9)))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowDebug())

	path := docPath(t, "logged.kvsml")
	in := &object.PointObject{Coords: array.Of[float32](0, 0, 0, 1, 1, 1)}
	require.NoError(t, WritePointObject(path, in, WithEncoding(format.EncodingExternalBinary), WithLogger(logger)))
	_, err := ReadPointObject(path, WithReaderLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `msg="wrote external array"`)
	require.Contains(t, out, "logged_coord.dat")
	require.Contains(t, out, `msg="wrote document"`)
	require.Contains(t, out, `msg="reading object"`)
	require.Equal(t, 3, strings.Count(out, "level=debug"))
}
