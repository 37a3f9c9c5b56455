package content

import (
	"embed"
	"io/fs"
)

//go:embed base/*.lua
var baseFS embed.FS

// LoadBase loads the embedded default content set.
func LoadBase() (*Catalog, error) {
	sub, err := fs.Sub(baseFS, "base")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}
