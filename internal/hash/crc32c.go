package hash

import (
	"encoding/base64"
	"encoding/binary"
	"hash"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// NewCRC32C returns a streaming hash, used to verify a record header and
// payload read in two parts.
func NewCRC32C() hash.Hash32 {
	return crc32.New(castagnoli)
}

// AppendCRC32C appends the little-endian checksum of dst[from:] to dst.
func AppendCRC32C(dst []byte, from int) []byte {
	return binary.LittleEndian.AppendUint32(dst, CRC32C(dst[from:]))
}

// CRC32CBase64 returns the checksum of data in the S3 header encoding.
func CRC32CBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(binary.BigEndian.AppendUint32(nil, CRC32C(data)))
}
