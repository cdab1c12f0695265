/*
Copyright (C) 2023-2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 names have the form s3://bucket/key. S3 does not support append;
// writes are buffered and the object is replaced on Close.

type S3Backend struct {
	Settings S3Settings

	mu     sync.Mutex
	client *s3.Client
}

// SplitS3Name splits s3://bucket/key into bucket and key
func SplitS3Name(name string) (bucket string, key string, err error) {
	rest, ok := strings.CutPrefix(name, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 name: %s", name)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 name must look like s3://bucket/key: %s", name)
	}
	return bucket, key, nil
}

func (s *S3Backend) ensureOpen(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	// Build AWS config with custom credentials
	var opts []func(*config.LoadOptions) error

	if s.Settings.Region != "" {
		opts = append(opts, config.WithRegion(s.Settings.Region))
	}

	if s.Settings.AccessKeyID != "" && s.Settings.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s.Settings.AccessKeyID,
				s.Settings.SecretAccessKey,
				"", // session token
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: failed to load AWS config: %w", err)
	}

	// Build S3 client options
	var s3Opts []func(*s3.Options)

	if s.Settings.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s.Settings.Endpoint)
		})
	}

	if s.Settings.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	s.client = s3.NewFromConfig(cfg, s3Opts...)
	return s.client, nil
}

func (s *S3Backend) Open(name string) (io.ReadCloser, error) {
	bucket, key, err := SplitS3Name(name)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	client, err := s.ensureOpen(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: %s: %w", name, err)
	}
	return resp.Body, nil
}

type s3WriteCloser struct {
	client *s3.Client
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *s3WriteCloser) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *s3WriteCloser) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	return err
}

func (s *S3Backend) Create(name string) (io.WriteCloser, error) {
	bucket, key, err := SplitS3Name(name)
	if err != nil {
		return nil, err
	}
	client, err := s.ensureOpen(context.Background())
	if err != nil {
		return nil, err
	}
	return &s3WriteCloser{client: client, bucket: bucket, key: key}, nil
}
