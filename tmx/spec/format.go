// Package spec implements the wire-level pieces of the TMX document format:
// tile payload encodings, compression, geometry strings and attribute values.
package spec

import (
	"errors"
	"fmt"
)

type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZlib
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return ""
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Format is the payload format of a layer's data element,
// the combination of its encoding and compression attributes.
type Format uint8

const (
	FormatXML        Format = iota // one <tile gid="..."/> child per cell
	FormatCSV                      // encoding="csv"
	FormatBase64                   // encoding="base64"
	FormatBase64Gzip               // encoding="base64" compression="gzip"
	FormatBase64Zlib               // encoding="base64" compression="zlib"
)

// Encoding and compression attribute values.
const (
	EncodingBase64 = "base64"
	EncodingCSV    = "csv"

	CompressionGzipName = "gzip"
	CompressionZlibName = "zlib"
)

// ErrUnsupportedEncoding is returned for an unknown data encoding attribute.
var ErrUnsupportedEncoding = errors.New("libtmx: unsupported data encoding")

// ErrUnsupportedCompression is returned for an unknown data compression attribute.
var ErrUnsupportedCompression = errors.New("libtmx: unsupported data compression")

// ErrDataLength is returned when layer data does not hold the expected number of tiles.
var ErrDataLength = errors.New("libtmx: decoded data length mismatch")

// ErrInvalidBase64 wraps base64 decoding errors of layer data.
var ErrInvalidBase64 = errors.New("libtmx: invalid base64 data")

// ErrInvalidCSV is returned for a csv value that is not a gid.
var ErrInvalidCSV = errors.New("libtmx: invalid csv data")

// ParseFormat maps the encoding and compression attributes of a data element to a Format.
// Compression is only meaningful for base64 and is ignored otherwise.
func ParseFormat(encoding, compression string) (Format, error) {
	switch encoding {
	case "":
		return FormatXML, nil
	case EncodingCSV:
		return FormatCSV, nil
	case EncodingBase64:
		switch compression {
		case "":
			return FormatBase64, nil
		case CompressionGzipName:
			return FormatBase64Gzip, nil
		case CompressionZlibName:
			return FormatBase64Zlib, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCompression, compression)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
}

// Encoding returns the encoding attribute value of the format.
func (f Format) Encoding() string {
	switch f {
	case FormatCSV:
		return EncodingCSV
	case FormatBase64, FormatBase64Gzip, FormatBase64Zlib:
		return EncodingBase64
	}
	return ""
}

func (f Format) Compression() Compression {
	switch f {
	case FormatBase64Gzip:
		return CompressionGzip
	case FormatBase64Zlib:
		return CompressionZlib
	}
	return CompressionNone
}

// Textual reports whether the payload is carried as character data of the data element.
func (f Format) Textual() bool {
	return f != FormatXML
}

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatCSV:
		return "csv"
	case FormatBase64:
		return "base64"
	case FormatBase64Gzip:
		return "base64+gzip"
	case FormatBase64Zlib:
		return "base64+zlib"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}
