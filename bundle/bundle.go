package bundle

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/signpost/http/resp"
)

const (
	StaticDir   = "static"
	TemplateDir = "templates"

	// FilenameVar is the route variable StaticHandler reads the requested file from.
	FilenameVar = "filename"
)

// A Bundle resolves the files belonging to an import name.
type Bundle struct {
	// The name the Bundle was constructed with. Do not change it.
	ImportName string

	root string

	loaderOnce sync.Once
	loader     fs.FS
}

// New constructs a *Bundle for importName, resolving its root path.
func New(importName string) *Bundle {
	return &Bundle{ImportName: importName, root: rootPath(importName)}
}

// rootPath returns the absolute directory importName is rooted at.
func rootPath(importName string) string {
	if dir, ok := registered(importName); ok {
		return dir
	}

	if importName != "" {
		if abs, err := filepath.Abs(importName); err == nil && isDir(abs) {
			return abs
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}

// RootPath returns the absolute directory the Bundle resolves files against.
func (b *Bundle) RootPath() string { return b.root }

// StaticFolder returns the directory static files are served from.
func (b *Bundle) StaticFolder() string { return filepath.Join(b.root, StaticDir) }

// TemplateFolder returns the directory templates are loaded from.
func (b *Bundle) TemplateFolder() string { return filepath.Join(b.root, TemplateDir) }

// HasStaticFolder reports whether the root path holds a static folder.
func (b *Bundle) HasStaticFolder() bool { return isDir(b.StaticFolder()) }

// TemplateLoader returns the templates folder as an fs.FS,
// or nil when the root path holds no templates folder.
//
// The folder is looked up on the first call only.
func (b *Bundle) TemplateLoader() fs.FS {
	b.loaderOnce.Do(func() {
		if dir := b.TemplateFolder(); isDir(dir) {
			b.loader = os.DirFS(dir)
		}
	})

	return b.loader
}

// StaticPath returns the path to the file filename names in the static folder.
//
// filename uses forward slashes and is cleaned first.
// A name leaving the static folder, or one not naming a regular file, returns ErrNotFound.
func (b *Bundle) StaticPath(filename string) (string, error) {
	name := path.Clean(strings.ReplaceAll(filename, "\\", "/"))
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%w: %q leaves %s", ErrNotFound, filename, StaticDir)
	}

	fp := filepath.Join(b.StaticFolder(), filepath.FromSlash(strings.TrimPrefix(name, "/")))
	info, err := os.Stat(fp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %q is not a file", ErrNotFound, filename)
	}

	return fp, nil
}

// SendStaticFile sends the file filename names in the static folder using d,
// answering requests whose validators match the file with 304 Not Modified.
//
// A file not found is answered with 404 and an error wrapping ErrNotFound returns.
func (b *Bundle) SendStaticFile(d *resp.Responder, w http.ResponseWriter, r *http.Request, filename string) error {
	fp, err := b.StaticPath(filename)
	if err != nil {
		http.NotFound(w, r)
		return err
	}

	return d.File(w, r, resp.Path(fp), resp.Conditional())
}

// StaticHandler serves files from the static folder,
// reading the name of the file from the FilenameVar route variable.
func (b *Bundle) StaticHandler(d *resp.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = b.SendStaticFile(d, w, r, mux.Vars(r)[FilenameVar])
	}
}

// OpenResource opens the file name names, relative to the root path, for reading.
// name uses forward slashes to reach into subfolders.
//
// Calling code must close the returned io.ReadCloser.
func (b *Bundle) OpenResource(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(b.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}

		return nil, err
	}

	return f, nil
}

func isDir(fp string) bool {
	info, err := os.Stat(fp)
	return err == nil && info.IsDir()
}
