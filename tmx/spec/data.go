package spec

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libtmx/tile"
)

const gidSize = 4

// MaxCellCount bounds the tile buffer of one layer: 1<<26 cells, 256 MiB of gids.
const MaxCellCount = 1 << 26

// CellCount returns the number of cells of a layer of the given size. Negative
// sides count as empty. Sizes above MaxCellCount are an ErrDataLength error.
func CellCount(size tile.Size) (int, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return 0, nil
	}
	if size.Height > MaxCellCount/size.Width {
		return 0, fmt.Errorf("%w: %dx%d layer exceeds %d cells", ErrDataLength, size.Width, size.Height, MaxCellCount)
	}
	return size.Width * size.Height, nil
}

type DataParams struct {
	// CellCount is the width*height of the owning layer, at most MaxCellCount.
	CellCount int

	// StrictCSV makes a csv payload whose token count differs from CellCount an error.
	// When unset the document is trusted and the result is cut or zero-padded to CellCount.
	StrictCSV bool
}

// DecodeData decodes the character data of a layer's data element into raw global tile ids.
// Flip flags are kept as they are.
func DecodeData(text string, format Format, params DataParams) ([]tile.GID, error) {
	if params.CellCount < 0 || params.CellCount > MaxCellCount {
		return nil, fmt.Errorf("%w: cell count %d out of range", ErrDataLength, params.CellCount)
	}

	switch format {
	case FormatCSV:
		return decodeCSV(text, params)
	case FormatBase64, FormatBase64Gzip, FormatBase64Zlib:
		return decodeBase64(text, format.Compression(), params.CellCount)
	}
	return nil, fmt.Errorf("%w: %v has no character data", ErrUnsupportedEncoding, format)
}

func decodeCSV(text string, params DataParams) ([]tile.GID, error) {
	gids := make([]tile.GID, 0)

	for row := range strings.SplitSeq(text, "\n") {
		for token := range strings.SplitSeq(row, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			value, err := strconv.ParseUint(token, 10, 32)
			if err != nil {
				if params.StrictCSV {
					return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
				}
				value = 0
			}
			gids = append(gids, tile.GID(value))
		}
	}

	if params.CellCount <= 0 || len(gids) == params.CellCount {
		return gids, nil
	}
	if params.StrictCSV {
		return nil, fmt.Errorf("%w: got %d tiles, want %d", ErrDataLength, len(gids), params.CellCount)
	}
	if len(gids) > params.CellCount {
		return gids[:params.CellCount], nil
	}
	return append(gids, make([]tile.GID, params.CellCount-len(gids))...), nil
}

func decodeBase64(text string, compression Compression, cellCount int) ([]tile.GID, error) {
	// payloads are usually indented inside the data element
	compact := strings.Join(strings.Fields(text), "")

	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}

	expectedLength := cellCount * gidSize
	data, err = Decompress(data, compression, expectedLength)
	if err != nil {
		return nil, err
	}

	if len(data) != expectedLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDataLength, len(data), expectedLength)
	}

	gids := make([]tile.GID, cellCount)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, gids); err != nil {
		return nil, err
	}
	return gids, nil
}

// EncodeData is the inverse of DecodeData: it produces the character data of a data element.
func EncodeData(gids []tile.GID, format Format) (string, error) {
	switch format {
	case FormatCSV:
		var builder strings.Builder
		for i, gid := range gids {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatUint(uint64(gid), 10))
		}
		return builder.String(), nil

	case FormatBase64, FormatBase64Gzip, FormatBase64Zlib:
		data := make([]byte, 0, len(gids)*gidSize)
		for _, gid := range gids {
			data = binary.LittleEndian.AppendUint32(data, uint32(gid))
		}
		compressed, err := Compress(data, format.Compression())
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString(compressed), nil
	}
	return "", fmt.Errorf("%w: %v has no character data", ErrUnsupportedEncoding, format)
}
