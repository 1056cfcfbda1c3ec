// Package hash holds the CRC32-Castagnoli checksum shared by the trial
// journal (little-endian trailer after every record) and the S3 archive
// (base64 of the big-endian sum, as S3 expects in x-amz-checksum-crc32c).
package hash
