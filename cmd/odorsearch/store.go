package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/odorsearch/archive"
	archiveminio "github.com/hupe1980/odorsearch/archive/minio"
	archives3 "github.com/hupe1980/odorsearch/archive/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// openStore opens the archive named by uri:
//
//	mem://                              in-memory (for dry runs)
//	file:///path or a plain path        local directory
//	s3://bucket/prefix                  AWS S3, default credential chain
//	minio://host:port/bucket/prefix     MinIO, MINIO_ACCESS_KEY/MINIO_SECRET_KEY; ?secure=false for http
func openStore(ctx context.Context, uri string) (archive.Store, error) {
	if !strings.Contains(uri, "://") {
		return archive.NewLocalStore(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid archive uri %q: %w", uri, err)
	}

	switch u.Scheme {
	case "mem":
		return archive.NewMemoryStore(), nil
	case "file":
		root := u.Host + u.Path
		if root == "" {
			return nil, fmt.Errorf("invalid archive uri %q: missing path", uri)
		}
		return archive.NewLocalStore(root), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("invalid archive uri %q: missing bucket", uri)
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return archives3.NewStore(awss3.NewFromConfig(cfg), u.Host, strings.TrimPrefix(u.Path, "/")), nil
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("invalid archive uri %q: want minio://host/bucket[/prefix]", uri)
		}
		secure := true
		if v := u.Query().Get("secure"); v != "" {
			if secure, err = strconv.ParseBool(v); err != nil {
				return nil, fmt.Errorf("invalid archive uri %q: %w", uri, err)
			}
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: secure,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO client: %w", err)
		}
		return archiveminio.NewStore(client, bucket, prefix), nil
	default:
		return nil, fmt.Errorf("unsupported archive scheme %q", u.Scheme)
	}
}

// openRunIndex opens the DynamoDB run index in table.
func openRunIndex(ctx context.Context, table string) (*archives3.RunIndex, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return archives3.NewRunIndex(dynamodb.NewFromConfig(cfg), table), nil
}
