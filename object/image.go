package object

import "github.com/arloliu/kvsml/array"

// ImageObject is a 2D raster stored row by row.
type ImageObject struct {
	Width     int
	Height    int
	PixelType PixelType
	Pixels    array.Array[uint8]
}

func (o *ImageObject) Kind() Kind { return KindImage }

func (o *ImageObject) NumberOfPixels() int {
	return o.Width * o.Height
}

func (o *ImageObject) Validate() error {
	bpp := o.PixelType.BytesPerPixel()
	if bpp == 0 {
		return invalid(o.Kind(), "pixel type %s", o.PixelType)
	}
	if want := bpp * o.NumberOfPixels(); o.Pixels.Len() != want {
		return invalid(o.Kind(), "%dx%d %s image needs %d bytes, got %d", o.Width, o.Height, o.PixelType, want, o.Pixels.Len())
	}

	return nil
}

// TransferFunction maps a scalar range onto Resolution color and opacity
// entries.
type TransferFunction struct {
	Resolution int
	Colors     array.Array[uint8]
	Opacities  array.Array[float32]
	Range      ValueRange
}

func (o *TransferFunction) Kind() Kind { return KindTransferFunction }

func (o *TransferFunction) Validate() error {
	if o.Resolution <= 0 {
		return invalid(o.Kind(), "resolution %d", o.Resolution)
	}
	if o.Colors.Len() != 3*o.Resolution {
		return invalid(o.Kind(), "color map holds %d values, want %d", o.Colors.Len(), 3*o.Resolution)
	}
	if o.Opacities.Len() != o.Resolution {
		return invalid(o.Kind(), "opacity map holds %d values, want %d", o.Opacities.Len(), o.Resolution)
	}

	return nil
}

// NewTransferFunction returns a gray ramp from transparent black to opaque white.
func NewTransferFunction(resolution int) *TransferFunction {
	if resolution <= 0 {
		return &TransferFunction{Resolution: resolution}
	}

	tf := &TransferFunction{
		Resolution: resolution,
		Colors:     array.New[uint8](3 * resolution),
		Opacities:  array.New[float32](resolution),
	}
	if resolution < 2 {
		return tf
	}

	colors, opacities := tf.Colors.Values(), tf.Opacities.Values()
	for i := 0; i < resolution; i++ {
		t := float32(i) / float32(resolution-1)
		g := uint8(t*255 + 0.5)
		colors[3*i], colors[3*i+1], colors[3*i+2] = g, g, g
		opacities[i] = t
	}

	return tf
}
