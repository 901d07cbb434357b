/*
Package ranger initializes and manages a signpost app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using the import name of the application,
which locates the application's static and templates folders; cf. [bundle.New].

[*Ranger.Guide] begins a signpost app's web server.
By default, [*Ranger.Guide] listens on localhost:3000,
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the signpost web server.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context passed in with [WithContext],
or send a signal [*Ranger.Guide] listens for.

When the application has a static folder, its files are served under /static/
by the route named "static", so templates can link to them with:

	{{ urlFor "static" "filename" "css/site.css" }}

# Configuration

A developer configures a signpost app through environment variables.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; replaces HOST & PORT
  - CONTACT_US_EMAIL: the email address end users can contact when errors occur
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [signpost.Environment]
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT: requests per second allowed from one IP address, 0 turns limiting off; default: 5
  - RATE_BURST: requests allowed at once from one IP address; default: 20
  - REDIS_URI: the address of a Redis server to store sessions in; default: sessions are stored in cookies
  - REDIS_PASSWORD: the password for authenticating to the Redis server
  - SEND_FILE_MAX_AGE: how long - as understood by [time.ParseDuration] - clients may cache files; default: 12h
  - SERVER_IDLE_TIMEOUT: the timeout for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_MAX_AGE: the number of seconds a session lasts; default: 604800
  - SESSION_NAME: the name sessions are stored under; default: signpost
  - USE_X_SENDFILE: whether the web server in front of the application sends files through X-Sendfile; default: false
*/
package ranger
