package resp

import (
	"bufio"
	"fmt"
	"hash/adler32"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// XSendfileHeader names the header a web server reads to send a file on the app's behalf.
	XSendfileHeader = "X-Sendfile"

	defaultMimeType = "application/octet-stream"
	sniffLen        = 3072
)

// File sends the contents of a file to the client,
// configured by Path or Reader, and optionally MimeType, Attachment, NoETag, CacheTimeout and Conditional.
//
// When WithXSendfile configured the Responder and the file's path is known,
// the web server in front of the app is asked to send the file through the X-Sendfile header
// and no body is written.
//
// The response may be cached publicly, for 12 hours unless WithSendFileMaxAge or CacheTimeout say otherwise.
// Unless NoETag is passed, a file with a known path is tagged with an ETag
// derived from its modification time, size and path.
//
// A file that does not exist is answered with 404 and ErrNotFound returns.
// Requesting an attachment for a stream without a name returns ErrAttachmentName.
func (doer *Responder) File(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody {
		defer closeBody(r)
	}

	src := rr.file.reader
	fp := rr.file.path
	if fp == "" && src != nil {
		if named, ok := src.(interface{ Name() string }); ok {
			fp = named.Name()
		}
	}

	if fp == "" && src == nil {
		return fmt.Errorf("%w: no file to send, call Path or Reader", ErrMissingData)
	}

	if fp != "" && !filepath.IsAbs(fp) {
		fp = filepath.Join(doer.root(), fp)
	}

	if rr.file.attachment && rr.file.attachName == "" && fp == "" {
		closeReader(src)
		return fmt.Errorf("%w", ErrAttachmentName)
	}

	var info fs.FileInfo
	if fp != "" {
		info, err = os.Stat(fp)
		if err == nil && !info.Mode().IsRegular() {
			err = fmt.Errorf("%s is not a regular file", fp)
		}

		if err != nil {
			closeReader(src)
			http.NotFound(w, r)
			return fmt.Errorf("%w: %s", ErrNotFound, err)
		}
	}

	mt := rr.file.mimeType
	if mt == "" {
		name := fp
		if name == "" {
			name = rr.file.attachName
		}

		if name != "" {
			mt = mime.TypeByExtension(filepath.Ext(name))
		}
	}

	if mt == "" && fp == "" {
		br := bufio.NewReaderSize(src, sniffLen)
		if head, _ := br.Peek(sniffLen); len(head) > 0 {
			mt = mimetype.Detect(head).String()
		}
		src = readCloser{br, src}
	}

	if mt == "" {
		mt = defaultMimeType
	}

	h := w.Header()
	h.Set("Content-Type", mt)

	if rr.file.attachment {
		name := rr.file.attachName
		if name == "" {
			name = filepath.Base(fp)
		}

		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}

	sendfile := doer.useXSendfile && fp != ""
	if sendfile {
		closeReader(src)
		src = nil
		h.Set(XSendfileHeader, fp)
	}

	timeout := doer.sendFileMaxAge
	if rr.file.cacheTimeout != nil {
		timeout = *rr.file.cacheTimeout
	}

	if secs := int64(timeout / time.Second); secs > 0 {
		h.Set("Cache-Control", "public, max-age="+strconv.FormatInt(secs, 10))
		h.Set("Expires", time.Now().Add(timeout).UTC().Format(http.TimeFormat))
	} else {
		h.Set("Cache-Control", "public")
	}

	if rr.etag && info != nil {
		etag := ETag(fp, info)
		h.Set("ETag", etag)
		h.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))

		if rr.file.conditional && notModified(r, etag, info.ModTime()) {
			closeReader(src)
			// NOTE: some servers ignore 304 and send the file anyway
			h.Del(XSendfileHeader)
			h.Del("Content-Type")
			h.Del("Content-Length")
			w.WriteHeader(http.StatusNotModified)
			return nil
		}
	}

	code := rr.code
	if code == 0 {
		code = http.StatusOK
	}

	if sendfile {
		w.WriteHeader(code)
		return nil
	}

	if src == nil {
		f, err := os.Open(fp)
		if err != nil {
			h.Del("ETag")
			http.NotFound(w, r)
			return fmt.Errorf("%w: %s", ErrNotFound, err)
		}

		h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		src = f
	}
	defer closeReader(src)

	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return nil
	}

	if _, err := io.Copy(w, src); err != nil {
		doer.logger.Error("failed sending file", newLogContext(r, err, map[string]any{"file": fp}))
		return err
	}

	return nil
}

// ETag derives the entity tag of the file at fp, described by info,
// from its modification time, its size and the adler32 checksum of fp.
//
// The tag changes when any of those change.
func ETag(fp string, info fs.FileInfo) string {
	mtime := float64(info.ModTime().UnixNano()) / float64(time.Second)
	return fmt.Sprintf(
		`W/"signpost-%s-%d-%d"`,
		strconv.FormatFloat(mtime, 'f', -1, 64),
		info.Size(),
		adler32.Checksum([]byte(fp))&0xffffffff,
	)
}

// notModified reports whether the client making r already holds the file
// tagged etag and last modified at mtime.
//
// Only GET and HEAD requests are considered.
// If-None-Match takes precedence over If-Modified-Since.
func notModified(r *http.Request, etag string, mtime time.Time) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	if inm := r.Header.Get("If-None-Match"); inm != "" {
		return etagMatches(inm, etag)
	}

	ims := r.Header.Get("If-Modified-Since")
	if ims == "" {
		return false
	}

	t, err := http.ParseTime(ims)
	if err != nil {
		return false
	}

	// HTTP dates carry no sub-second precision
	return !mtime.Truncate(time.Second).After(t)
}

// etagMatches weakly compares etag against each tag listed in header.
func etagMatches(header, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
			return true
		}
	}

	return false
}

// root returns the directory relative file paths are resolved against.
func (doer *Responder) root() string {
	if doer.rootPath != "" {
		return doer.rootPath
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}

// readCloser reads through a buffered reader while closing the stream underneath it.
type readCloser struct {
	io.Reader
	under io.Reader
}

func (rc readCloser) Close() error {
	if c, ok := rc.under.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

func closeReader(rd io.Reader) {
	if c, ok := rd.(io.Closer); ok {
		c.Close()
	}
}
