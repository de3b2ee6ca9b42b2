// Package linkfile loads affiliate link lists from YAML, TOML or JSON files.
//
// All three formats share one shape: a top-level "links" list whose entries
// carry a title and a url. The editorial record names the destination field
// "link", so that spelling is accepted as well.
package linkfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/validation"
)

// Format identifies a link file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

type entry struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	URL   string `json:"url" yaml:"url" toml:"url"`
	Link  string `json:"link" yaml:"link" toml:"link"`
}

type file struct {
	Links []entry `json:"links" yaml:"links" toml:"links"`
}

type linkSet struct {
	Links []domain.AffiliateLink `json:"links" validate:"dive"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported link file extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// Load reads and validates the link file at path.
func Load(path string) ([]domain.AffiliateLink, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read link file: %w", err)
	}

	links, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return links, nil
}

// Parse decodes data in the given format. Entries keep their file order.
// When both url and link are set, url wins.
func Parse(data []byte, format Format) ([]domain.AffiliateLink, error) {
	var f file
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported link file format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	links := make([]domain.AffiliateLink, 0, len(f.Links))
	for _, e := range f.Links {
		url := strings.TrimSpace(e.URL)
		if url == "" {
			url = strings.TrimSpace(e.Link)
		}
		links = append(links, domain.AffiliateLink{
			Title: strings.TrimSpace(e.Title),
			URL:   url,
		})
	}

	if err := validation.New().Validate(linkSet{Links: links}); err != nil {
		return nil, err
	}
	return links, nil
}
