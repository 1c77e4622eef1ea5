// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// readCloser pairs a reader with the function that releases it and
// everything beneath it.
type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

// open opens path for reading. Paths of the form gs://bucket/object
// are read from Cloud Storage. Inputs ending in .gz or .zst are
// decompressed.
func open(ctx context.Context, path string, allowStdin bool) (io.ReadCloser, error) {
	var rc io.ReadCloser
	var err error
	switch {
	case allowStdin && path == "-":
		rc = io.NopCloser(os.Stdin)
	case strings.HasPrefix(path, "gs://"):
		rc, err = openGCS(ctx, path)
	default:
		rc, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &readCloser{zr, func() error {
			zerr := zr.Close()
			if err := rc.Close(); err != nil {
				return err
			}
			return zerr
		}}, nil
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &readCloser{dec, func() error {
			dec.Close()
			return rc.Close()
		}}, nil
	}
	return rc, nil
}

func openGCS(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(path, "gs://"), "/")
	if !ok || bucket == "" || object == "" {
		return nil, fmt.Errorf("%s: want gs://bucket/object", path)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &readCloser{r, func() error {
		rerr := r.Close()
		if err := client.Close(); err != nil {
			return err
		}
		return rerr
	}}, nil
}
