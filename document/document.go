// Package document defines path-addressed documents decoded from a
// serialized format.
//
// A Document owns its root value, so callers never have to track a root
// that an operation replaced (for example an insert into a root array).
// Paths use the jsonuri syntax, including the ".", "..", "..." and "~"
// directives.
package document

import "github.com/linkjun/jsonuri"

// Document is a decoded tree together with the format it came from.
type Document interface {
	// Get retrieves the value at path.
	// Returns the value and true if found, or nil and false if not found.
	//
	// Example:
	//   value, ok := doc.Get("/menu/id/2")
	Get(path string) (any, bool)

	// Set stores value at path, creating intermediate mappings.
	//
	// Example:
	//   err := doc.Set("/server/port", 8080)
	Set(path string, value any) error

	// Remove nulls the value at path and returns what was there.
	// The key or array slot is kept.
	Remove(path string) (any, bool)

	// Swap exchanges the values at two existing paths.
	Swap(pathA, pathB string) error

	// Move relocates the value at pathA before or after the index named by pathB.
	Move(pathA, pathB string, dir jsonuri.Direction) error

	// Up moves an array element gap positions towards the start.
	Up(path string, gap int) error

	// Down moves an array element gap positions towards the end.
	Down(path string, gap int) error

	// Insert splices value into an array before or after the index named by path.
	Insert(path string, value any, dir jsonuri.Direction) error

	// Data returns the current root.
	Data() any

	// Marshal serializes the document to bytes.
	//
	// Example:
	//   data, err := doc.Marshal()
	//   if err != nil {
	//     return err
	//   }
	//   os.WriteFile("config.yaml", data, 0644)
	Marshal() ([]byte, error)

	// Format returns the document format type.
	Format() DocumentFormat
}

// DocumentFormat represents the serialization format of a document.
type DocumentFormat string

const (
	// FormatYAML represents YAML format (using gopkg.in/yaml.v3).
	FormatYAML DocumentFormat = "yaml"

	// FormatTOML represents TOML format (using github.com/pelletier/go-toml/v2).
	FormatTOML DocumentFormat = "toml"

	// FormatJSONC represents JSON with Comments (using github.com/tailscale/hujson).
	FormatJSONC DocumentFormat = "jsonc"

	// FormatJSON represents standard JSON.
	FormatJSON DocumentFormat = "json"
)
