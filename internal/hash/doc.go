// Package hash provides the checksum that guards persisted sets.
//
// Every encoded set ends with a CRC32-Castagnoli (CRC32C) of the bytes
// before it. Go's crc32 package uses SSE4.2 or the ARM CRC extension when
// available.
//
// For one-shot checksums:
//
//	sum := hash.CRC32C(data)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(header)
//	h.Write(words)
//	sum := h.Sum32()
package hash
