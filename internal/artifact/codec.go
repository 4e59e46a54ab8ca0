// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Compression identifies an artifact's outer compression.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
	CompressionGzip Compression = "gzip"
)

// Format identifies an artifact's payload encoding.
type Format string

const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatSIMM    Format = "simm"
)

var (
	magicZstd = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicLZ4  = []byte{0x04, 0x22, 0x4D, 0x18}
	magicGzip = []byte{0x1F, 0x8B}

	// SIMMMagic starts the binary similarity matrix format:
	// "SIMM", uint32 dim, then dim*dim float32, all little-endian.
	SIMMMagic = []byte("SIMM")
)

const simmHeaderLen = 8

var compressionSuffixes = []string{".zst", ".zstd", ".lz4", ".gz"}

// zstdDecoder is safe for concurrent DecodeAll calls.
var zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxArtifactBytes))

// DetectCompression inspects the leading magic bytes.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, magicZstd):
		return CompressionZstd
	case bytes.HasPrefix(data, magicLZ4):
		return CompressionLZ4
	case bytes.HasPrefix(data, magicGzip):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Decompress undoes the compression detected by DetectCompression.
func Decompress(data []byte) ([]byte, error) {
	switch DetectCompression(data) {
	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return out, nil
	case CompressionLZ4:
		out, err := readAllLimited(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return out, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		out, err := readAllLimited(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}

func readAllLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxArtifactBytes+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxArtifactBytes {
		return nil, fmt.Errorf("decompressed artifact exceeds %d bytes", MaxArtifactBytes)
	}
	return out, nil
}

// FormatFromRef derives the payload format from the reference extension,
// ignoring a trailing compression suffix.
func FormatFromRef(ref string) Format {
	name := strings.ToLower(path.Base(ref))
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	switch path.Ext(name) {
	case ".json":
		return FormatJSON
	case ".msgpack", ".mpk", ".msgp":
		return FormatMsgpack
	case ".simm", ".bin":
		return FormatSIMM
	default:
		return FormatUnknown
	}
}

// SniffFormat guesses the format of an uncompressed payload.
func SniffFormat(data []byte) Format {
	if bytes.HasPrefix(data, SIMMMagic) {
		return FormatSIMM
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatMsgpack
}

func payload(ref string, raw []byte) ([]byte, Format, error) {
	data, err := Decompress(raw)
	if err != nil {
		return nil, FormatUnknown, err
	}
	format := FormatFromRef(ref)
	if format == FormatUnknown {
		format = SniffFormat(data)
	}
	return data, format, nil
}

// DecodeCatalog decodes a catalog artifact of {"movie_id", "title"} records.
func DecodeCatalog(ref string, raw []byte) ([]catalog.Item, error) {
	data, format, err := payload(ref, raw)
	if err != nil {
		return nil, err
	}

	var items []catalog.Item
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &items)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &items)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", format, err)
	}

	for i := range items {
		if verr := validation.ValidateStruct(&items[i]); verr != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, verr)
		}
	}
	return items, nil
}

// matrixRecord is the msgpack matrix layout.
type matrixRecord struct {
	Dim    int       `msgpack:"dim"`
	Scores []float32 `msgpack:"scores"`
}

// DecodeMatrix decodes a similarity matrix artifact.
func DecodeMatrix(ref string, raw []byte) (*catalog.Matrix, error) {
	data, format, err := payload(ref, raw)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSIMM:
		return decodeSIMM(data)
	case FormatJSON:
		var rows [][]float32
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode json matrix: %w", err)
		}
		return catalog.MatrixFromRows(rows)
	case FormatMsgpack:
		var rec matrixRecord
		if err := msgpack.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode msgpack matrix: %w", err)
		}
		return catalog.NewMatrix(rec.Dim, rec.Scores)
	default:
		return nil, fmt.Errorf("unsupported matrix format %q", format)
	}
}

func decodeSIMM(data []byte) (*catalog.Matrix, error) {
	if len(data) < simmHeaderLen || !bytes.HasPrefix(data, SIMMMagic) {
		return nil, errors.New("simm: missing header")
	}
	dim := uint64(binary.LittleEndian.Uint32(data[4:8]))
	body := data[simmHeaderLen:]
	// dim*dim fits in uint64 for any uint32 dim; the *4 may not.
	if dim*dim > MaxArtifactBytes/4 {
		return nil, fmt.Errorf("simm: dim %d exceeds the %d byte artifact limit", dim, MaxArtifactBytes)
	}
	if want := dim * dim * 4; uint64(len(body)) != want {
		return nil, fmt.Errorf("simm: dim %d needs %d bytes of scores, have %d", dim, want, len(body))
	}

	scores := make([]float32, int(dim*dim))
	for i := range scores {
		scores[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[i*4:]))
	}
	return catalog.NewMatrix(int(dim), scores)
}

// EncodeSIMM writes m in the binary SIMM format.
func EncodeSIMM(m *catalog.Matrix) []byte {
	dim := m.Dim()
	out := make([]byte, simmHeaderLen+dim*dim*4)
	copy(out, SIMMMagic)
	binary.LittleEndian.PutUint32(out[4:8], uint32(dim))
	off := simmHeaderLen
	for i := 0; i < dim; i++ {
		for _, v := range m.Row(i) {
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(v))
			off += 4
		}
	}
	return out
}

// EncodeMatrixMsgpack writes m in the msgpack {"dim", "scores"} layout.
func EncodeMatrixMsgpack(m *catalog.Matrix) ([]byte, error) {
	dim := m.Dim()
	rec := matrixRecord{Dim: dim, Scores: make([]float32, 0, dim*dim)}
	for i := 0; i < dim; i++ {
		rec.Scores = append(rec.Scores, m.Row(i)...)
	}
	return msgpack.Marshal(&rec)
}
