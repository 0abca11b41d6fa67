// seehuhn.de/go/landarea - rasterise land-access polygons and integrate circular masks
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"seehuhn.de/go/landarea/grid"
)

// Minio stores rasters as objects in an S3-compatible bucket.
type Minio struct {
	Client *minio.Client
	Bucket string
}

// MinioConfig describes the connection to an object store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// NewMinio connects to the object store and creates the bucket if
// necessary.
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &Minio{Client: client, Bucket: cfg.Bucket}, nil
}

// Put uploads g as object name.
func (m *Minio) Put(ctx context.Context, name string, g *grid.Grid) error {
	buf := &bytes.Buffer{}
	if err := encode(buf, name, g); err != nil {
		return err
	}
	contentType := "application/octet-stream"
	if compressed(name) {
		contentType = "application/zstd"
	}
	_, err := m.Client.PutObject(ctx, m.Bucket, name, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// Get downloads object name, which must hold exactly nx×ny values.
func (m *Minio) Get(ctx context.Context, name string, nx, ny int, px float64) (*grid.Grid, error) {
	obj, err := m.Client.GetObject(ctx, m.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer obj.Close()

	g, err := decode(obj, name, nx, ny, px)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return g, nil
}
