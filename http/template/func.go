package template

import (
	"encoding/json"
	html "html/template"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/xy-planning-network/signpost"
)

// AddFn includes the named function in the Parse function map.
//
// Previously parsed templates are dropped so they pick up fn.
func (p *Parse) AddFn(name string, fn any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
	p.cache = make(map[string]*html.Template)
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e signpost.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}

// ToJSON returns "tojson" as the name of the function for convenient passing to a template.FuncMap
// and returns a function marshaling its argument into JSON safe for embedding in a <script> tag.
//
// Forward slashes are escaped so "</script>" in a string cannot close the tag.
func ToJSON() (string, func(any) (html.JS, error)) {
	return "tojson", func(v any) (html.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}

		return html.JS(strings.ReplaceAll(string(b), "/", `\/`)), nil
	}
}
