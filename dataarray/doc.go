// Package dataarray is the KVSML array codec.
//
// An array element is either a <DataValue> holding a single record as text, or
// a <DataArray> whose values are stored in one of three encodings:
//
//	<DataArray type="float">0 0 0 1 1 1</DataArray>                      inline
//	<DataArray type="float" format="ascii" file="mesh_coord.dat"/>     external text
//	<DataArray type="float" format="binary" file="mesh_coord.dat"/>    external memory dump
//
// External binary files are raw native-order dumps with no header. Their
// length is not validated beyond the number of bytes the caller asks for; a
// file that is too short fails with errs.ErrIO. A binary file may carry an
// optional `compression` attribute ("zstd", "s2" or "lz4").
//
// Decoding always yields exactly the requested number of elements in the
// requested type. Values are cast numerically when the declared type differs.
//
// Basic usage:
//
//	loc, err := dataarray.Locate(doc.Path, node)
//	if err != nil {
//	    return err
//	}
//	coords, err := dataarray.DecodeAs[float32](loc, nvertices*3)
//
// Encoding appends the element to its role node:
//
//	file := dataarray.ExternalFileName(doc.Path, "coord")
//	err := dataarray.Encode(coordNode, format.EncodingExternalBinary, coords.Any(), 3, file)
package dataarray
