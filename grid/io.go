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

package grid

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrSize is returned when a stored raster does not hold exactly nx*ny values.
var ErrSize = errors.New("raster size mismatch")

// WriteTo writes the grid as a flat array of little-endian float32
// values in row-major order, without any header.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var buf [4]byte
	var n int64
	for _, v := range g.Data {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		k, err := bw.Write(buf[:])
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Read reads a grid written by [Grid.WriteTo].  The input must contain
// exactly nx*ny values.
func Read(r io.Reader, nx, ny int, px float64) (*Grid, error) {
	g, err := New(nx, ny, px)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	var buf [4]byte
	for i := range g.Data {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: got %d of %d values", ErrSize, i, len(g.Data))
			}
			return nil, err
		}
		g.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))
	}

	// trailing data means the caller got the shape wrong
	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("%w: more than %d values", ErrSize, len(g.Data))
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return g, nil
}
