package kvsml

import (
	"github.com/arloliu/kvsml/object"
	"github.com/arloliu/kvsml/tag"
)

const (
	attrWidth     = "width"
	attrHeight    = "height"
	attrPixelType = "pixel_type"
	attrMinValue  = "min_value"
	attrMaxValue  = "max_value"
)

// ReadImageObject reads a raster image.
//
//	<ImageObject width="W" height="H" pixel_type="gray|color">
//	  <Pixel> <DataArray .../> </Pixel>
//	</ImageObject>
func ReadImageObject(path string, opts ...ReaderOption) (*object.ImageObject, error) {
	r, err := openObject(path, object.KindImage, opts...)
	if err != nil {
		return nil, err
	}

	obj := &object.ImageObject{}
	if obj.Width, err = tag.IntAttr(r.body, attrWidth); err != nil {
		return nil, err
	}
	if obj.Height, err = tag.IntAttr(r.body, attrHeight); err != nil {
		return nil, err
	}
	if obj.PixelType, err = enumAttr(r.body, attrPixelType, object.ParsePixelType); err != nil {
		return nil, err
	}

	role := tag.Pixel(obj.PixelType.BytesPerPixel())
	if obj.Pixels, err = readRequired[uint8](r, r.body, role, obj.NumberOfPixels()); err != nil {
		return nil, err
	}

	return obj, nil
}

// WriteImageObject writes obj to path.
func WriteImageObject(path string, obj *object.ImageObject, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	tag.SetInt(w.body, attrWidth, obj.Width)
	tag.SetInt(w.body, attrHeight, obj.Height)
	w.body.SetAttr(attrPixelType, obj.PixelType.String())

	if _, err := w.write(w.body, tag.Pixel(obj.PixelType.BytesPerPixel()), obj.Pixels.Any()); err != nil {
		return err
	}

	return w.save()
}

// ReadTransferFunction reads a transfer function. Unlike other objects it
// sits directly under the root element.
//
//	<KVSML>
//	  <TransferFunction resolution="N" min_value="..." max_value="...">
//	    <ColorMap> ... </ColorMap>
//	    <OpacityMap> ... </OpacityMap>
//	  </TransferFunction>
//	</KVSML>
func ReadTransferFunction(path string, opts ...ReaderOption) (*object.TransferFunction, error) {
	r, err := openObject(path, object.KindTransferFunction, opts...)
	if err != nil {
		return nil, err
	}

	obj := &object.TransferFunction{}
	if obj.Resolution, err = tag.IntAttr(r.body, attrResolution); err != nil {
		return nil, err
	}

	minValue, hasMin, err := tag.FloatAttr(r.body, attrMinValue)
	if err != nil {
		return nil, err
	}
	maxValue, hasMax, err := tag.FloatAttr(r.body, attrMaxValue)
	if err != nil {
		return nil, err
	}
	if hasMin && hasMax {
		obj.Range = object.ValueRange{Min: minValue, Max: maxValue, Set: true}
	}

	if obj.Colors, err = readRequired[uint8](r, r.body, tag.ColorMap, obj.Resolution); err != nil {
		return nil, err
	}
	if obj.Opacities, err = readRequired[float32](r, r.body, tag.OpacityMap, obj.Resolution); err != nil {
		return nil, err
	}

	return obj, nil
}

// WriteTransferFunction writes obj to path.
func WriteTransferFunction(path string, obj *object.TransferFunction, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	tag.SetInt(w.body, attrResolution, obj.Resolution)
	if obj.Range.Set {
		tag.SetFloat(w.body, attrMinValue, obj.Range.Min)
		tag.SetFloat(w.body, attrMaxValue, obj.Range.Max)
	}

	if _, err := w.write(w.body, tag.ColorMap, obj.Colors.Any()); err != nil {
		return err
	}
	if _, err := w.write(w.body, tag.OpacityMap, obj.Opacities.Any()); err != nil {
		return err
	}

	return w.save()
}
