// Package archive stores finished-run reports as immutable blobs.
//
// Store is the storage abstraction; implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with atomic writes
//   - minio.Store: MinIO and S3-compatible storage
//   - s3.Store: Amazon S3, with a DynamoDB run index
//
// Blobs may be compressed with Encode; Decode detects the algorithm from a
// 5-byte header, so readers need no out-of-band information.
package archive
