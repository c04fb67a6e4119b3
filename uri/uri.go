// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package uri implements the opaque, hierarchical resource identifier used
// throughout storagecore to name arrays, groups, fragments and files.
package uri

import (
	"path"
	"strings"
)

// DefaultScheme is used when a raw path carries no "scheme://" prefix.
const DefaultScheme = "file"

// URI is an immutable, hierarchical identifier: a scheme plus a canonical
// slash-separated path. Two URIs are equal iff their canonical forms are
// byte-equal.
type URI struct {
	scheme string
	path   string
}

// New parses s into a URI. A bare path such as "/data/a" is given the
// DefaultScheme. The path is cleaned (path.Clean) and trailing slashes are
// stripped so that equality is byte equality of the canonical form.
func New(s string) URI {
	if s == "" {
		return URI{}
	}
	scheme, rest := splitScheme(s)
	return URI{scheme: scheme, path: canonicalize(rest)}
}

// Join appends elem to u's path, returning a new URI under the same scheme.
func (u URI) Join(elem ...string) URI {
	parts := append([]string{u.path}, elem...)
	return URI{scheme: u.scheme, path: canonicalize(path.Join(parts...))}
}

// Scheme returns the URI's scheme, e.g. "file" or "s3".
func (u URI) Scheme() string { return u.scheme }

// Path returns the canonical path component, without the scheme.
func (u URI) Path() string { return u.path }

// Base returns the last path element, analogous to path.Base.
func (u URI) Base() string { return path.Base(u.path) }

// Parent returns the URI one level up the hierarchy.
func (u URI) Parent() URI {
	return URI{scheme: u.scheme, path: canonicalize(path.Dir(u.path))}
}

// IsEmpty reports whether u was constructed from the empty string.
func (u URI) IsEmpty() bool { return u.path == "" && u.scheme == "" }

// String returns the canonical "scheme://path" form.
func (u URI) String() string {
	if u.IsEmpty() {
		return ""
	}
	return u.scheme + "://" + u.path
}

// Equal reports byte equality of the canonical form.
func (u URI) Equal(other URI) bool {
	return u.scheme == other.scheme && u.path == other.path
}

func splitScheme(s string) (scheme, rest string) {
	if idx := strings.Index(s, "://"); idx >= 0 {
		return s[:idx], s[idx+3:]
	}
	return DefaultScheme, s
}

func canonicalize(p string) string {
	if p == "" {
		return ""
	}
	cleaned := path.Clean("/" + p)
	return strings.TrimPrefix(cleaned, "/")
}
