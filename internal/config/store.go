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

package config

import (
	"context"

	"seehuhn.de/go/landarea/store"
)

// Open returns the raster store described by the configuration.
func (s StoreConfig) Open(ctx context.Context) (store.Store, error) {
	switch s.Kind {
	case "minio":
		return store.NewMinio(ctx, store.MinioConfig{
			Endpoint:  s.Endpoint,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
			Bucket:    s.Bucket,
			Secure:    s.Secure,
		})
	case "file":
		return &store.File{Dir: s.Dir}, nil
	default:
		return nil, ErrInvalid
	}
}
