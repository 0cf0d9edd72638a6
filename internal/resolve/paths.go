// Package resolve maps request targets onto files below a fixed root
// directory and decides what a request should be answered with.
package resolve

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// ErrRejected is returned for request paths that cannot be decoded or
// that point outside the root directory.
var ErrRejected = errors.New("resolve: request path rejected")

// Resolver is safe for concurrent use; its fields never change after New.
type Resolver struct {
	fs           afero.Fs
	absoluteRoot string
	indexName    string
}

// New returns a Resolver confined to root. root is made absolute and
// cleaned, but its existence is not checked here.
func New(fs afero.Fs, root string) (*Resolver, error) {
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		fs:           fs,
		absoluteRoot: absoluteRoot,
		indexName:    "index.html",
	}, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string {
	return r.absoluteRoot
}

// Resolve converts a raw request target ("path?query") into an absolute
// path that is the root itself or lies below it.
func (r *Resolver) Resolve(requestPath string) (string, error) {
	if requestPath == "" {
		requestPath = "/"
	}

	if i := strings.IndexByte(requestPath, '?'); i >= 0 {
		requestPath = requestPath[:i]
	}

	pathname, err := url.PathUnescape(requestPath)
	if err != nil {
		return "", ErrRejected
	}

	if strings.IndexByte(pathname, 0) >= 0 || !utf8.ValidString(pathname) {
		return "", ErrRejected
	}

	relative := strings.TrimPrefix(pathname, "/")
	relative = filepath.Clean(filepath.FromSlash(relative))
	candidate := filepath.Join(r.absoluteRoot, relative)

	if !r.isWithinRoot(candidate) {
		return "", ErrRejected
	}

	return candidate, nil
}

// isWithinRoot compares on a separator boundary so that a sibling such as
// "/srv/app-other" is not taken to be inside "/srv/app".
func (r *Resolver) isWithinRoot(target string) bool {
	if target == r.absoluteRoot {
		return true
	}

	prefix := r.absoluteRoot
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}

	return strings.HasPrefix(target, prefix)
}

// Extension reports the extension of the base name of p. Leading dots of
// the base name never start an extension, so ".env" has none.
func Extension(p string) string {
	base := strings.TrimLeft(filepath.Base(p), ".")
	return filepath.Ext(base)
}
