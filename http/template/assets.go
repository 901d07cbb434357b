package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/xy-planning-network/signpost"
)

const staticBase = "static"

// AssetURI encloses the environment and filesystem so when called executing a template,
// emits a URI for a file under the static folder.
//
// Outside of development, a content-hashed variant of the file is preferred, e.g.,
// static/js/app-af8s7f9.js is emitted for js/app.js when it exists.
func AssetURI(env signpost.Environment, filesys fs.FS) (string, func(string) string) {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	return "assetURI", func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			return fmt.Sprintf("/%s/%s", staticBase, assetPath)

		default:
			ext := path.Ext(assetPath)
			filename := strings.TrimSuffix(assetPath, ext)

			// Note: where assetPath = js/app.js
			// glob = static/js/app-*.js
			glob := fmt.Sprintf("%s/%s-*%s", staticBase, filename, ext)
			matches, err := fs.Glob(filesys, glob)
			if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
				return fmt.Sprintf("/%s/%s", staticBase, assetPath)
			}

			return fmt.Sprintf("/%s", matches[0])
		}
	}
}
