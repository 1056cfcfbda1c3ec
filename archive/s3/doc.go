// Package s3 provides an Amazon S3 implementation of archive.Store and a
// DynamoDB-backed RunIndex that records the latest report per experiment.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "odor-runs", "lab-a/")
//	index := s3.NewRunIndex(dynamodb.NewFromConfig(cfg), "odor-run-index")
//
// # Features
//
//   - CRC32C integrity checksums on single-part uploads
//   - Multipart uploads for large reports
//   - Automatic pagination for listing
//   - Conditional writes for concurrent index updates
package s3
