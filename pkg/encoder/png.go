// Package encoder serializes rendered frames. PNG output is limited to
// 8-bit truecolor without alpha or interlacing.
package encoder

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/df07/go-raycaster/pkg/core"
)

// Signature is the fixed 8-byte PNG file signature
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Chunk types
const (
	ChunkHeader  = "IHDR"
	ChunkData    = "IDAT"
	ChunkTrailer = "IEND"
)

const (
	bitDepth           = 8
	colorTypeTruecolor = 2
	compressionMethod  = 0
	filterMethod       = 0
	interlaceNone      = 0
	filterTypeNone     = 0
	bytesPerPixel      = 3
)

// Compression selects the zlib level used for the image data chunk
type Compression int

const (
	DefaultCompression Compression = iota
	NoCompression
	BestSpeed
	BestCompression
)

// ParseCompression converts "default", "none", "speed" or "best" to a Compression
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "default":
		return DefaultCompression, nil
	case "none":
		return NoCompression, nil
	case "speed":
		return BestSpeed, nil
	case "best":
		return BestCompression, nil
	default:
		return 0, fmt.Errorf("unknown compression %q: %w", name, core.ErrConfiguration)
	}
}

func (c Compression) level() int {
	switch c {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case BestCompression:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

// Options configures Encode
type Options struct {
	Compression Compression
}

// Encode returns frame as PNG bytes using default compression
func Encode(frame *core.Frame) ([]byte, error) {
	return EncodeWithOptions(frame, Options{})
}

// EncodeWithOptions returns frame as PNG bytes
func EncodeWithOptions(frame *core.Frame, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, frame, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes frame as PNG to w. The frame is validated before
// anything is written.
func EncodeTo(w io.Writer, frame *core.Frame, opts Options) error {
	if err := frame.Validate(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	data, err := compressScanlines(frame, opts.Compression)
	if err != nil {
		return fmt.Errorf("encode: compress scanlines: %w", err)
	}

	if _, err := w.Write(Signature[:]); err != nil {
		return err
	}
	if err := writeChunk(w, ChunkHeader, header(frame)); err != nil {
		return err
	}
	if err := writeChunk(w, ChunkData, data); err != nil {
		return err
	}
	return writeChunk(w, ChunkTrailer, nil)
}

// header builds the 13-byte IHDR payload
func header(frame *core.Frame) []byte {
	payload := make([]byte, 13)
	binary.BigEndian.PutUint32(payload[0:4], uint32(frame.Width))
	binary.BigEndian.PutUint32(payload[4:8], uint32(frame.Height))
	payload[8] = bitDepth
	payload[9] = colorTypeTruecolor
	payload[10] = compressionMethod
	payload[11] = filterMethod
	payload[12] = interlaceNone
	return payload
}

// Scanlines returns the uncompressed image data: each row is a filter-type
// byte followed by R, G, B for every pixel
func Scanlines(frame *core.Frame) []byte {
	stride := 1 + frame.Width*bytesPerPixel
	raw := make([]byte, 0, stride*frame.Height)
	for _, row := range frame.Pixels {
		raw = append(raw, filterTypeNone)
		for _, c := range row {
			raw = append(raw, c.R, c.G, c.B)
		}
	}
	return raw
}

func compressScanlines(frame *core.Frame, compression Compression) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, compression.level())
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(Scanlines(frame)); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeChunk frames payload as length, type, payload, CRC-32(type+payload)
func writeChunk(w io.Writer, chunkType string, payload []byte) error {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(payload)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())

	for _, part := range [][]byte{length[:], []byte(chunkType), payload, sum[:]} {
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("write %s chunk: %w", chunkType, err)
		}
	}
	return nil
}
