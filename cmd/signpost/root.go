package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/signpost/bundle"
	"github.com/xy-planning-network/signpost/http/resp"
	"github.com/xy-planning-network/signpost/http/router"
	"github.com/xy-planning-network/signpost/ranger"
)

const indexPage = "index"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signpost",
		Short: "Serve a directory of static files and templates",
		Long: `signpost serves the static/ and templates/ folders of a directory.

Every template directly under templates/ is rendered at /{name},
index.tmpl at /. Files under static/ are served at /static/.

Configuration is read from environment variables and a .env file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("root", ".", "directory holding static/ and templates/")
	cmd.AddCommand(newServeCmd(), newRoutesCmd())

	return cmd
}

// newRanger builds a *ranger.Ranger rooted at the directory the --root flag names,
// with a route for every page found in its templates folder.
func newRanger(cmd *cobra.Command) (*ranger.Ranger, error) {
	root := "."
	if f := cmd.Flag("root"); f != nil {
		root = f.Value.String()
	}

	var rng *ranger.Ranger
	routes, err := pageRoutes(bundle.New(root), func() *ranger.Ranger { return rng })
	if err != nil {
		return nil, err
	}

	rng, err = ranger.New(root, ranger.WithRoutes(routes...))
	if err != nil {
		return nil, fmt.Errorf("could not set up %s: %w", root, err)
	}

	return rng, nil
}

// pageRoutes constructs a GET route for every template directly under b's templates folder.
func pageRoutes(b *bundle.Bundle, rng func() *ranger.Ranger) ([]router.Route, error) {
	loader := b.TemplateLoader()
	if loader == nil {
		return nil, nil
	}

	files, err := fs.Glob(loader, "*.tmpl")
	if err != nil {
		return nil, err
	}

	routes := make([]router.Route, 0, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(file, path.Ext(file))
		p := "/" + name
		if name == indexPage {
			p = "/"
		}

		tmpl := file
		routes = append(routes, router.Route{
			Name:   name,
			Path:   p,
			Method: http.MethodGet,
			Handler: func(w http.ResponseWriter, r *http.Request) {
				_ = rng().Html(w, r, resp.Tmpls(tmpl))
			},
		})
	}

	return routes, nil
}
