package spec_test

import (
	"bytes"
	"testing"

	"github.com/eak1mov/go-libtmx/tmx/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	dataCases := []struct {
		Name string
		Data []byte
	}{
		{Name: "Repeat", Data: bytes.Repeat([]byte{42}, 100500)},
		{Name: "Foobar", Data: []byte("foobar")},
	}
	compressionCases := []struct {
		Name        string
		Compression spec.Compression
	}{
		{Name: "None", Compression: spec.CompressionNone},
		{Name: "Gzip", Compression: spec.CompressionGzip},
		{Name: "Zlib", Compression: spec.CompressionZlib},
	}
	for _, dc := range dataCases {
		for _, cc := range compressionCases {
			t.Run(dc.Name+cc.Name, func(t *testing.T) {
				compressed, err := spec.Compress(dc.Data, cc.Compression)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				decompressed, err := spec.Decompress(compressed, cc.Compression, len(dc.Data))
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !cmp.Equal(dc.Data, decompressed) {
					t.Errorf("Decompress(Compress(input)) != input")
				}
			})
		}
	}
}

func TestDecompressErrors(t *testing.T) {
	_, err := spec.Decompress([]byte("not compressed"), spec.CompressionZlib, 16)
	require.Error(t, err)

	_, err = spec.Decompress([]byte("not compressed"), spec.CompressionGzip, 16)
	require.Error(t, err)

	_, err = spec.Decompress(nil, spec.Compression(42), 0)
	require.ErrorIs(t, err, spec.ErrUnsupportedCompression)

	_, err = spec.Compress(nil, spec.Compression(42))
	require.ErrorIs(t, err, spec.ErrUnsupportedCompression)
}

func TestDecompressLimit(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 1<<20)
	for _, compression := range []spec.Compression{spec.CompressionGzip, spec.CompressionZlib} {
		t.Run(compression.String(), func(t *testing.T) {
			compressed, err := spec.Compress(data, compression)
			require.NoError(t, err)

			decompressed, err := spec.Decompress(compressed, compression, 16)
			require.NoError(t, err)
			require.Len(t, decompressed, 17)
		})
	}
}
