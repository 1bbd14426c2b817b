// Package endian provides byte order utilities for KVSML binary data files.
//
// External binary arrays are plain memory dumps written in the byte order of
// the host that produced them. There is no byte-swap layer: a file is read back
// with the native order of the reading host.
//
//	engine := endian.NativeEngine()
//	v := engine.Uint32(buf[i*4:])
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectEngine()

func detectEngine() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// NativeEngine returns the engine matching the host's byte order.
func NativeEngine() EndianEngine {
	return nativeEngine
}
