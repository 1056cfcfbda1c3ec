// Package minio provides an archive.Store backed by MinIO or any other
// S3-compatible object storage, using the official MinIO Go client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := miniostore.NewStore(client, "odor-runs", "lab-a/")
//	err = odorsearch.ArchiveReport(ctx, store, report, archive.Zstd)
package minio
