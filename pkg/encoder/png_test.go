package encoder

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raycaster/pkg/core"
)

type chunk struct {
	Type    string
	Payload []byte
	CRC     uint32
}

// readChunks splits an encoded image into its chunks, checking the signature
func readChunks(t *testing.T, data []byte) []chunk {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, Signature[:]), "missing PNG signature")

	var chunks []chunk
	rest := data[len(Signature):]
	for len(rest) > 0 {
		require.GreaterOrEqual(t, len(rest), 12, "truncated chunk")
		length := binary.BigEndian.Uint32(rest[0:4])
		require.GreaterOrEqual(t, len(rest), int(12+length), "chunk length overruns data")

		c := chunk{
			Type:    string(rest[4:8]),
			Payload: rest[8 : 8+length],
			CRC:     binary.BigEndian.Uint32(rest[8+length : 12+length]),
		}
		chunks = append(chunks, c)
		rest = rest[12+length:]
	}
	return chunks
}

func solidFrame(width, height int, c core.Color) *core.Frame {
	frame := core.NewFrame(width, height)
	for row := range frame.Pixels {
		for col := range frame.Pixels[row] {
			frame.Set(row, col, c)
		}
	}
	return frame
}

func TestEncode_SingleRedPixelRoundTrip(t *testing.T) {
	red := core.NewColor(255, 0, 0)
	data, err := Encode(solidFrame(1, 1, red))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}

func TestEncode_ChunkLayout(t *testing.T) {
	data, err := Encode(solidFrame(3, 2, core.NewColor(10, 20, 30)))
	require.NoError(t, err)

	chunks := readChunks(t, data)
	require.Len(t, chunks, 3)
	assert.Equal(t, ChunkHeader, chunks[0].Type)
	assert.Equal(t, ChunkData, chunks[1].Type)
	assert.Equal(t, ChunkTrailer, chunks[2].Type)
	assert.Empty(t, chunks[2].Payload)

	for _, c := range chunks {
		expected := crc32.ChecksumIEEE(append([]byte(c.Type), c.Payload...))
		assert.Equal(t, expected, c.CRC, "%s CRC", c.Type)
	}

	ihdr := chunks[0].Payload
	require.Len(t, ihdr, 13)
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(ihdr[0:4]), "width")
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(ihdr[4:8]), "height")
	assert.Equal(t, []byte{8, 2, 0, 0, 0}, ihdr[8:])

	zr, err := zlib.NewReader(bytes.NewReader(chunks[1].Payload))
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 10, 20, 30, 10, 20, 30, 10, 20, 30,
		0, 10, 20, 30, 10, 20, 30, 10, 20, 30,
	}, raw)
}

func TestEncode_KnownBytes(t *testing.T) {
	data, err := EncodeWithOptions(solidFrame(1, 1, core.Black), Options{Compression: NoCompression})
	require.NoError(t, err)

	expectedPrefix := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00,
		0x90, 0x77, 0x53, 0xDE,
	}
	expectedTrailer := []byte{0x00, 0x00, 0x00, 0x00, 'I', 'E', 'N', 'D', 0xAE, 0x42, 0x60, 0x82}

	assert.Equal(t, expectedPrefix, data[:len(expectedPrefix)])
	assert.Equal(t, expectedTrailer, data[len(data)-len(expectedTrailer):])
}

func TestEncode_CompressionLevelsDecodeIdentically(t *testing.T) {
	frame := core.NewFrame(17, 5)
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			frame.Set(row, col, core.NewColor(col*15, row*50, (col+row)*7))
		}
	}

	for _, compression := range []Compression{DefaultCompression, NoCompression, BestSpeed, BestCompression} {
		data, err := EncodeWithOptions(frame, Options{Compression: compression})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		for row := 0; row < frame.Height; row++ {
			for col := 0; col < frame.Width; col++ {
				r, g, b, _ := img.At(col, row).RGBA()
				c := frame.At(row, col)
				assert.Equal(t, [3]uint8{c.R, c.G, c.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
			}
		}
	}
}

func TestEncode_InvalidFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame *core.Frame
	}{
		{"nil frame", nil},
		{"zero width", &core.Frame{Width: 0, Height: 1, Pixels: [][]core.Color{{}}}},
		{"zero height", &core.Frame{Width: 1, Height: 0}},
		{"ragged rows", &core.Frame{Width: 2, Height: 2, Pixels: [][]core.Color{make([]core.Color, 2), make([]core.Color, 1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := EncodeTo(&buf, tt.frame, Options{})
			assert.ErrorIs(t, err, core.ErrConfiguration)
			assert.Zero(t, buf.Len(), "nothing should be written for an invalid frame")
		})
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestEncodeTo_WriterError(t *testing.T) {
	for after := 0; after < 4; after++ {
		err := EncodeTo(&failingWriter{after: after}, solidFrame(2, 2, core.White), Options{})
		assert.Error(t, err)
	}
}

func TestParseCompression(t *testing.T) {
	for name, expected := range map[string]Compression{
		"": DefaultCompression, "default": DefaultCompression, "none": NoCompression,
		"speed": BestSpeed, "best": BestCompression,
	} {
		got, err := ParseCompression(name)
		require.NoError(t, err)
		assert.Equal(t, expected, got, name)
	}

	_, err := ParseCompression("lzma")
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestASCII(t *testing.T) {
	frame := core.NewFrame(3, 2)
	frame.Set(0, 0, core.White)
	frame.Set(1, 2, core.NewColor(1, 0, 0))

	text, err := ASCII(frame)
	require.NoError(t, err)
	assert.Equal(t, "*---*\n|*  |\n|  *|\n*---*", text)

	_, err = ASCII(&core.Frame{})
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
