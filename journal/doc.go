// Package journal provides an append-only trial journal for search runs.
//
// A physical search takes hours. The journal records every event the search
// depends on (run metadata, target, each measured trial, the final recipe)
// so a host that restarts can rebuild the exact engine state by replaying it.
//
// File layout:
//
//	[Header: magic "OSJ1", version, flags, zstd level, codec name]
//	[Record]...
//
// Each record is [Type:1][Seq:8][Len:4][Payload:Len][CRC32C:4], little endian.
// The checksum covers type, sequence, length and payload. With compression
// enabled the record stream after the header is a zstd stream.
//
// Replay stops silently at a torn tail (a record cut short by a crash) and
// fails with ErrCorrupted on a checksum mismatch.
package journal
