package spec

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
)

func Compress(data []byte, compression Compression) ([]byte, error) {
	if compression == CompressionNone {
		return data, nil
	}

	var buffer bytes.Buffer
	var writer io.WriteCloser
	switch compression {
	case CompressionGzip:
		writer, _ = gzip.NewWriterLevel(&buffer, gzip.BestCompression)
	case CompressionZlib:
		writer, _ = zlib.NewWriterLevel(&buffer, zlib.BestCompression)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, compression)
	}

	_, err := writer.Write(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}

	return buffer.Bytes(), nil
}

// Decompress inflates data. sizeHint is the expected output length: the result
// is preallocated to it and inflation stops one byte past it, so oversized
// output can be rejected without being held in memory.
func Decompress(data []byte, compression Compression, sizeHint int) ([]byte, error) {
	if compression == CompressionNone {
		return data, nil
	}

	var reader io.ReadCloser
	var err error
	switch compression {
	case CompressionGzip:
		reader, err = gzip.NewReader(bytes.NewReader(data))
	case CompressionZlib:
		reader, err = zlib.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, compression)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	defer reader.Close()

	sizeHint = max(sizeHint, 0)
	var buffer bytes.Buffer
	buffer.Grow(sizeHint)
	if _, err := buffer.ReadFrom(io.LimitReader(reader, int64(sizeHint)+1)); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return buffer.Bytes(), nil
}
