// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package fragmentmetadata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arraydb/storagecore/uri"
)

// NewFragmentURI builds a fragment directory URI under arrayURI, encoding
// timestamp and pid in its base name.
func NewFragmentURI(arrayURI uri.URI, timestamp int64, pid int) uri.URI {
	return arrayURI.Join(fmt.Sprintf("%d_%d", timestamp, pid))
}

// ParseFragmentURI extracts the timestamp and pid embedded in a fragment
// URI's base name. It returns an error if the base name is not of the form
// "<timestamp>_<pid>".
func ParseFragmentURI(u uri.URI) (timestamp int64, pid int, err error) {
	base := u.Base()
	idx := strings.LastIndex(base, "_")
	if idx < 0 {
		return 0, 0, Error.New("fragment uri %q: missing <timestamp>_<pid> suffix", u)
	}
	timestamp, err = strconv.ParseInt(base[:idx], 10, 64)
	if err != nil {
		return 0, 0, Error.New("fragment uri %q: invalid timestamp: %v", u, err)
	}
	pid64, err := strconv.ParseInt(base[idx+1:], 10, 64)
	if err != nil {
		return 0, 0, Error.New("fragment uri %q: invalid pid: %v", u, err)
	}
	return timestamp, int(pid64), nil
}

// Less reports whether fragment URI a sorts before b under the canonical
// order: ascending timestamp, ties broken by ascending pid. It
// panics if either URI cannot be parsed; callers are expected to have
// already validated fragment URIs at creation time.
func Less(a, b uri.URI) bool {
	at, ap, err := ParseFragmentURI(a)
	if err != nil {
		panic(err)
	}
	bt, bp, err := ParseFragmentURI(b)
	if err != nil {
		panic(err)
	}
	if at != bt {
		return at < bt
	}
	return ap < bp
}

// SortURIs sorts fragment URIs into canonical read order in place.
func SortURIs(uris []uri.URI) {
	sort.Slice(uris, func(i, j int) bool { return Less(uris[i], uris[j]) })
}
