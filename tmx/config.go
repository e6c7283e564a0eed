package tmx

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

type config struct {
	open         func(name string) (io.ReadCloser, error)
	resolve      func(name string) string
	resourceRoot string
	textures     map[string]Texture
	logger       *slog.Logger
	strictCSV    bool
}

type Option func(*config)

func newConfig(opts []Option) *config {
	c := &config{
		open:    func(name string) (io.ReadCloser, error) { return os.Open(name) },
		resolve: func(name string) string { return name },
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithFileSystem reads the map and its external tilesets from fsys instead of the OS.
// Paths are fs.FS paths: slash separated and unrooted.
func WithFileSystem(fsys fs.FS) Option {
	return func(c *config) {
		c.open = func(name string) (io.ReadCloser, error) {
			return fsys.Open(strings.TrimPrefix(name, "./"))
		}
	}
}

// WithResolver sets the function turning a relative or logical document name into
// the full path used to open it. Image paths go through it as well.
func WithResolver(resolve func(name string) string) Option {
	return func(c *config) { c.resolve = resolve }
}

// WithResourceRoot sets the directory relative paths are resolved against
// when the document itself has no directory.
func WithResourceRoot(dir string) Option {
	return func(c *config) { c.resourceRoot = dir }
}

// WithTextures supplies preloaded tileset images, keyed by image source.
// Tileset images are then looked up instead of only being resolved to paths.
func WithTextures(textures map[string]Texture) Option {
	return func(c *config) { c.textures = textures }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithStrictCSV makes csv layer data with a wrong number of tiles a parse error.
func WithStrictCSV(strict bool) Option {
	return func(c *config) { c.strictCSV = strict }
}
