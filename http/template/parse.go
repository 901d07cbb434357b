package template

import (
	"bytes"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Attribute(name, attr string) (Macro, error)
	Parse(fps ...string) (*html.Template, error)
}

// A Macro renders a single template defined inside a template file,
// as in:
//
//	{{ define "hello" }}Hello {{ . }}!{{ end }}
//
// The data passed in becomes dot.
type Macro func(data any) (html.HTML, error)

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
//
// Parse caches each set of templates it parses.
// Adding a function or calling Reset drops the cache.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap

	mu    sync.RWMutex
	cache map[string]*html.Template
}

// NewParser constructs a *Parse with the provided functional options.
//
// Templates are looked up first in the fs.FS set by WithFS - or the current working directory -
// then in those shipped with this package under tmpl/.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap), cache: make(map[string]*html.Template)}
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = &mergeFS{
		cache:   make(map[string]fs.FS),
		userDir: userFS,
		pkgDir:  pkgFS,
	}

	return p
}

// Attribute parses the template file name and retrieves the template named attr defined within it.
// The returned Macro executes that template alone.
//
// If the file cannot be parsed, that error returns.
// If no template named attr exists, ErrNoAttribute returns.
func (p *Parse) Attribute(name, attr string) (Macro, error) {
	tmpl, err := p.Parse(name)
	if err != nil {
		return nil, err
	}

	if tmpl.Lookup(attr) == nil {
		return nil, fmt.Errorf("%w: %q in %q", ErrNoAttribute, attr, name)
	}

	// cached templates stay unexecuted so callers can still Clone them
	set, err := tmpl.Clone()
	if err != nil {
		return nil, err
	}
	t := set.Lookup(attr)

	return func(data any) (html.HTML, error) {
		b := new(bytes.Buffer)
		if err := t.Execute(b, data); err != nil {
			return "", fmt.Errorf("executing %q in %q: %w", attr, name, err)
		}

		return html.HTML(b.String()), nil
	}, nil
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
//
// Empty file paths are skipped.
// The first file names the returned template.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	key := strings.Join(files, "\x00")
	p.mu.RLock()
	tmpl, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tmpl, err := html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
	if err != nil {
		return nil, err
	}

	if p.cache == nil {
		p.cache = make(map[string]*html.Template)
	}
	p.cache[key] = tmpl

	return tmpl, nil
}

// Reset drops every parsed template, so the next Parse reads files anew.
func (p *Parse) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cache = make(map[string]*html.Template)
	if mfs, ok := p.fs.(*mergeFS); ok {
		mfs.reset()
	}
}
