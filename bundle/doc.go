/*
Package bundle locates the files an application ships alongside its code.

A [Bundle] is bound to an import name and resolves everything relative to its root path:
the "static" folder served by [*Bundle.SendStaticFile],
the "templates" folder exposed by [*Bundle.TemplateLoader],
and any other resource opened with [*Bundle.OpenResource].

# Root path

Go binaries do not carry their source tree with them,
so a package wanting its directory found calls [Register] from an init function:

	func init() { bundle.Register("myapp") }

[New] then resolves the root path of an import name by, in order:
  - the directory of the file that registered the name
  - the directory the name itself points to, when one exists
  - the current working directory

# Static files

Static files are only ever served from beneath the static folder.
Names climbing out of it, such as "../secret.txt", are not found.
*/
package bundle
