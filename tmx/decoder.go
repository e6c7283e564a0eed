package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/eak1mov/go-libtmx/tmx/spec"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrOpenDocument wraps the error of opening a map or external tileset document.
var ErrOpenDocument = errors.New("libtmx: failed to open document")

// ErrSyntax wraps XML errors of a document.
var ErrSyntax = errors.New("libtmx: malformed document")

// Load parses the map document name and the tileset documents it references.
func Load(name string, opts ...Option) (*Map, error) {
	c := newConfig(opts)
	p := newParser(c, newMap(), c.resolve(name))
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	if !p.m.declared {
		return nil, ErrNoMap
	}
	return p.m, nil
}

// Decode parses a map document read from r. External tilesets and images are
// resolved against the resource root.
func Decode(r io.Reader, opts ...Option) (*Map, error) {
	p := NewParser(opts...)
	if err := p.Decode(r); err != nil {
		return nil, err
	}
	if !p.m.declared {
		return nil, ErrNoMap
	}
	return p.m, nil
}

func (p *Parser) parseDocument() error {
	file, err := p.config.open(p.document)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenDocument, err)
	}
	defer file.Close()

	return p.Decode(file)
}

// Decode feeds every element and character data token of r to the parser.
func (p *Parser) Decode(r io.Reader) error {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			attrs := make([]spec.Attr, 0, len(t.Attr))
			for _, attr := range t.Attr {
				attrs = append(attrs, spec.Attr{Name: attr.Name.Local, Value: attr.Value})
			}
			err = p.StartElement(t.Name.Local, attrs)
		case xml.EndElement:
			err = p.EndElement(t.Name.Local)
		case xml.CharData:
			p.CharData(t)
		}
		if err != nil {
			return err
		}
	}
}

// charsetReader lets documents declare a non UTF-8 encoding such as ISO-8859-1.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	encoding, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	return encoding.NewDecoder().Reader(input), nil
}
