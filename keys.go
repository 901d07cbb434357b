package signpost

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by signpost.
	IpAddrKey Key = "IpAddrKey"

	// ModuleKey stashes the name of the module whose route matched the HTTP request.
	ModuleKey Key = "ModuleKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// Key returns k so it can be used as a key in a map[string].
func (k Key) Key() string { return string(k) }

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "signpost context key: " + string(k)
}
