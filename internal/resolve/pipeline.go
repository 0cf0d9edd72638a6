package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"
)

// Kind is the terminal decision for a request.
type Kind int

const (
	Serve Kind = iota
	BadRequest
	NotFound
	InternalError
)

func (k Kind) String() string {
	switch k {
	case Serve:
		return "serve"
	case BadRequest:
		return "bad_request"
	case NotFound:
		return "not_found"
	case InternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is produced exactly once per request. Path is set only for
// Serve; Err only for InternalError.
type Outcome struct {
	Kind Kind
	Path string
	Err  error
}

// Lookup runs Resolve followed by Decide.
func (r *Resolver) Lookup(requestPath string) Outcome {
	resolved, err := r.Resolve(requestPath)
	if err != nil {
		return Outcome{Kind: BadRequest}
	}

	return r.Decide(resolved)
}

// Decide picks the file to serve for a resolved path. A directory is
// served through its index document; a missing path without an
// extension falls back to the index document of the root.
func (r *Resolver) Decide(resolvedPath string) Outcome {
	if resolvedPath == "" || !r.isWithinRoot(resolvedPath) {
		return Outcome{Kind: BadRequest}
	}

	candidate := resolvedPath

	info, ok, err := r.stat(resolvedPath)
	if err != nil {
		return internalError(err)
	}

	if ok && info.IsDir() {
		candidate = filepath.Join(resolvedPath, r.indexName)
	}

	info, ok, err = r.stat(candidate)
	if err != nil {
		return internalError(err)
	}

	if ok && info.Mode().IsRegular() {
		return Outcome{Kind: Serve, Path: candidate}
	}

	if Extension(candidate) != "" {
		return Outcome{Kind: NotFound}
	}

	fallback := filepath.Join(r.absoluteRoot, r.indexName)
	info, ok, err = r.stat(fallback)
	if err != nil {
		return internalError(err)
	}

	if ok && info.Mode().IsRegular() {
		return Outcome{Kind: Serve, Path: fallback}
	}

	return Outcome{Kind: NotFound}
}

// stat reports ok=false without an error when name does not exist. A path
// running through a regular file ("a.txt/b") counts as missing.
func (r *Resolver) stat(name string) (fs.FileInfo, bool, error) {
	info, err := r.fs.Stat(name)
	if err == nil {
		return info, true, nil
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, false, nil
	}

	return nil, false, err
}

func internalError(err error) Outcome {
	return Outcome{Kind: InternalError, Err: err}
}
