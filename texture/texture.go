// Package texture builds the texture table consumed by tmx.WithTextures from a
// directory of tileset images.
//
// Only image headers are decoded: a texture records where the image lives and
// how large it is, which is what tile rectangle lookups need.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
)

var ErrInvalidImage = errors.New("libtmx: invalid texture image")

// Info is the texture stored in the table for every image found.
type Info struct {
	Path   string // slash separated, relative to the loaded directory
	Size   tile.Size
	Format string // as registered with the image package: "png", "bmp", ...
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

type config struct {
	prefix string
	logger *slog.Logger
}

type Option func(*config)

// WithPrefix prepends prefix to every table key, so that keys match image paths
// as the tmx package resolves them. For example, textures loaded from
// "assets/images" are found by maps under "assets" with WithPrefix("images").
func WithPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// LoadDir loads every image below dir on the OS file system.
func LoadDir(dir string, opts ...Option) (map[string]tmx.Texture, error) {
	return Load(os.DirFS(dir), opts...)
}

// Load loads every image of fsys into a texture table keyed by path.
// Files without an image extension are skipped; image files that cannot be
// decoded are an error.
func Load(fsys fs.FS, opts ...Option) (map[string]tmx.Texture, error) {
	c := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&c)
	}

	textures := make(map[string]tmx.Texture)
	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !imageExtensions[strings.ToLower(path.Ext(filePath))] {
			c.logger.Debug("libtmx: skipping non-image file", "path", filePath)
			return nil
		}

		info, err := readInfo(fsys, filePath)
		if err != nil {
			return err
		}

		key := path.Join(c.prefix, filePath)
		textures[key] = info
		c.logger.Debug("libtmx: texture loaded", "key", key, "format", info.Format, "size", info.Size)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return textures, nil
}

func readInfo(fsys fs.FS, filePath string) (*Info, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	imageConfig, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrInvalidImage, filePath, err)
	}

	return &Info{
		Path:   filePath,
		Size:   tile.Size{Width: imageConfig.Width, Height: imageConfig.Height},
		Format: format,
	}, nil
}
