/*
Package signpost holds the pieces shared across a signpost app:
the [Environment] it runs in, context [Key] values, and sentinel errors.

The helpers application code reaches for live in subpackages:

  - http/resp writes JSON bodies, files and redirects;
  - http/router names routes and builds URLs for them;
  - http/session stores flash messages between requests;
  - http/template parses templates and exposes the macros they define;
  - bundle resolves static files, templates, and resources relative to an app's root;
  - ranger assembles all of the above into a running web server.
*/
package signpost
