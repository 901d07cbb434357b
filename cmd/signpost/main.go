// Command signpost serves a directory of static files and templates
// with the helpers of package ranger.
//
// Usage:
//
//	signpost serve --root ./site
//	signpost routes --root ./site
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
