// Package kvsml reads and writes KVSML documents: XML files describing point,
// line and polygon geometry, structured and unstructured volumes, images and
// transfer functions.
//
// # Core Features
//
//   - One Read/Write pair per object kind, plus generic Read and Write
//   - Arrays stored inline, in external ascii files or as external binary dumps
//   - Optional zstd, s2 or lz4 compression of external binary files
//   - Ten numeric element types, cast on read to the type each role expects
//
// # Basic Usage
//
// Writing a point cloud with its coordinates in a binary file next to the
// document:
//
//	points := &object.PointObject{
//	    Coords: array.Of[float32](0, 0, 0, 1, 0, 0, 0, 1, 0),
//	    Colors: array.Of[uint8](255, 0, 0),
//	}
//	err := kvsml.WritePointObject("cloud.kvsml", points,
//	    kvsml.WithEncoding(format.EncodingExternalBinary),
//	)
//
// This produces cloud.kvsml and cloud_coord.dat. The single color is shared by
// every vertex and is written inline.
//
// Reading it back:
//
//	points, err := kvsml.ReadPointObject("cloud.kvsml")
//
// When the kind is not known in advance:
//
//	obj, err := kvsml.Read(path)
//	switch o := obj.(type) {
//	case *object.StructuredVolumeObject:
//	    ...
//	}
//
// # Package Structure
//
// This package wires the object model (package object) to the document layout.
// Arrays go through package tag, which maps semantic roles onto the array
// codec in package dataarray.
package kvsml

import (
	"fmt"

	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/object"
)

// Read loads the document at path, whatever object kind it holds.
func Read(path string, opts ...ReaderOption) (object.Object, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case object.KindPoint:
		return asObject(ReadPointObject(path, opts...))
	case object.KindLine:
		return asObject(ReadLineObject(path, opts...))
	case object.KindPolygon:
		return asObject(ReadPolygonObject(path, opts...))
	case object.KindStructuredVolume:
		return asObject(ReadStructuredVolumeObject(path, opts...))
	case object.KindUnstructuredVolume:
		return asObject(ReadUnstructuredVolumeObject(path, opts...))
	case object.KindImage:
		return asObject(ReadImageObject(path, opts...))
	case object.KindTransferFunction:
		return asObject(ReadTransferFunction(path, opts...))
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedObject, kind)
	}
}

// asObject keeps a failed read from returning a non-nil interface holding a nil pointer.
func asObject[T object.Object](obj T, err error) (object.Object, error) {
	if err != nil {
		return nil, err
	}

	return obj, nil
}

// Write stores obj at path using the writer for its concrete type.
func Write(path string, obj object.Object, opts ...WriterOption) error {
	switch o := obj.(type) {
	case *object.PointObject:
		return WritePointObject(path, o, opts...)
	case *object.LineObject:
		return WriteLineObject(path, o, opts...)
	case *object.PolygonObject:
		return WritePolygonObject(path, o, opts...)
	case *object.StructuredVolumeObject:
		return WriteStructuredVolumeObject(path, o, opts...)
	case *object.UnstructuredVolumeObject:
		return WriteUnstructuredVolumeObject(path, o, opts...)
	case *object.ImageObject:
		return WriteImageObject(path, o, opts...)
	case *object.TransferFunction:
		return WriteTransferFunction(path, o, opts...)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedObject, obj)
	}
}
