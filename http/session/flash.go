package session

import (
	"context"
	"net/http"
	"sync"
)

const (
	// Default Flash Category
	FlashMessage = "message"

	// Recommended Flash Categories
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"

	// Default Flash Msg
	BadInputMsg   = "Hmm... check your form, something isn't correct."
	DefaultErrMsg = "Uh oh! We've run into an issue."
	NoAccessMsg   = "Oops, sending you back somewhere safe."
)

var ContactUsErr = DefaultErrMsg + " Please contact us at %s if the issue persists."

type FlashSessionable interface {
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

// A Flash is a short-lived message stored in a session
// until the next time it is read.
//
// Any string can be a Category, though the Flash* constants are recommended.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// NewFlash constructs a Flash in the default FlashMessage category.
func NewFlash(msg string) Flash { return Flash{Category: FlashMessage, Message: msg} }

// Messages returns only the messages of fs, in order.
func Messages(fs []Flash) []string {
	msgs := make([]string, 0, len(fs))
	for _, f := range fs {
		msgs = append(msgs, f.Message)
	}

	return msgs
}

type flashCtxKey struct{}

// requestFlashes holds the flashes pulled out of a session
// for the remainder of a single request.
type requestFlashes struct {
	loaded bool
	val    []Flash
	sync.Mutex
}

// NewFlashContext returns a copy of ctx able to remember the flashes
// read out of a session while handling a single request.
//
// Once a request's flashes are read, further reads during the same request
// return them again instead of an empty session.
func NewFlashContext(ctx context.Context) context.Context {
	if _, ok := ctx.Value(flashCtxKey{}).(*requestFlashes); ok {
		return ctx
	}

	return context.WithValue(ctx, flashCtxKey{}, new(requestFlashes))
}

func requestFlashesFromContext(ctx context.Context) *requestFlashes {
	rf, _ := ctx.Value(flashCtxKey{}).(*requestFlashes)
	return rf
}
