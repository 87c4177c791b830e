package powerio

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// DescriptionsFile is the name of the bundled column description file.
const DescriptionsFile = "power_desc.json"

//go:embed power_desc.json
var dataFS embed.FS

// Load reads and unmarshals a JSON file from fsys.
func Load[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Descriptions maps column names to help text.
type Descriptions map[string]string

// Get returns the description for column, or "" when none is known.
func (d Descriptions) Get(column string) string {
	return d[column]
}

// LoadDescriptions reads column descriptions from path. An empty path reads the bundled
// file instead.
func LoadDescriptions(path string) (Descriptions, error) {
	if path == "" {
		return Load[Descriptions](dataFS, DescriptionsFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var d Descriptions
	if err := json.NewDecoder(f).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	return d, nil
}

// BundledDescriptions returns the embedded descriptions, panicking if they fail to parse.
func BundledDescriptions() Descriptions {
	d, err := Load[Descriptions](dataFS, DescriptionsFile)
	if err != nil {
		panic(err)
	}
	return d
}
