package data

import (
	"net/url"
	"slices"
	"strings"

	"github.com/mwantia/menufs/data/errors"
)

const (
	// Scheme is the URI scheme routed to menufs.
	Scheme = "menu"
	// RootSegment is the leading segment naming the applications menu.
	RootSegment = "applications"
	// DesktopSuffix terminates every application id.
	DesktopSuffix = ".desktop"
)

// VirtualPath is a parsed, unescaped address into the menu tree.
// The zero value is the root.
type VirtualPath struct {
	segments []string
}

// ParsePath parses menu://applications[.menu]/<category>/.../<id>.desktop
// as well as bare relative paths. Trailing and repeated slashes are ignored.
func ParsePath(raw string) (VirtualPath, error) {
	rest := strings.TrimSpace(raw)
	scheme := Scheme + ":"
	if len(rest) >= len(scheme) && strings.EqualFold(rest[:len(scheme)], scheme) {
		rest = rest[len(scheme):]
	}

	var segments []string
	for _, part := range strings.Split(rest, "/") {
		if part == "" {
			continue
		}

		segment, err := url.PathUnescape(part)
		if err != nil {
			return VirtualPath{}, errors.InvalidPath(err, raw)
		}
		// An escaped slash would alias a different directory level.
		if strings.Contains(segment, "/") || segment == "." || segment == ".." || segment == "" {
			return VirtualPath{}, errors.InvalidPath(nil, raw)
		}

		segments = append(segments, segment)
	}

	if len(segments) > 0 && (segments[0] == RootSegment || segments[0] == RootSegment+".menu") {
		segments = segments[1:]
	}

	return VirtualPath{segments: segments}, nil
}

// MustParsePath is ParsePath for static paths; it panics on error.
func MustParsePath(raw string) VirtualPath {
	vp, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}

	return vp
}

// NewPath builds a path from already unescaped segments.
func NewPath(segments ...string) VirtualPath {
	return VirtualPath{segments: slices.Clone(segments)}
}

func (vp VirtualPath) IsRoot() bool {
	return len(vp.segments) == 0
}

func (vp VirtualPath) Len() int {
	return len(vp.segments)
}

// Segments returns a copy of the unescaped path segments.
func (vp VirtualPath) Segments() []string {
	return slices.Clone(vp.segments)
}

// Base returns the last segment, or "" for the root.
func (vp VirtualPath) Base() string {
	if vp.IsRoot() {
		return ""
	}

	return vp.segments[len(vp.segments)-1]
}

// Parent returns the path without its last segment. The parent of the root is the root.
func (vp VirtualPath) Parent() VirtualPath {
	if vp.IsRoot() {
		return vp
	}

	return VirtualPath{segments: vp.segments[:len(vp.segments)-1]}
}

func (vp VirtualPath) Join(name string) VirtualPath {
	segments := make([]string, 0, len(vp.segments)+1)
	segments = append(segments, vp.segments...)
	segments = append(segments, name)

	return VirtualPath{segments: segments}
}

func (vp VirtualPath) Equal(other VirtualPath) bool {
	return slices.Equal(vp.segments, other.segments)
}

// SplitForWrite decomposes a mutation target into its category path and item id.
// Targets directly below the root, and the root itself, are rejected.
func (vp VirtualPath) SplitForWrite() (VirtualPath, string, error) {
	if len(vp.segments) < 2 {
		return VirtualPath{}, "", errors.InvalidOperation(nil, "'%s' has no category component", vp.String())
	}

	return vp.Parent(), vp.Base(), nil
}

// String returns the unescaped, slash-joined path without scheme.
func (vp VirtualPath) String() string {
	return strings.Join(vp.segments, "/")
}

// URI returns the escaped menu:// form of the path.
func (vp VirtualPath) URI() string {
	escaped := make([]string, len(vp.segments))
	for i, segment := range vp.segments {
		escaped[i] = url.PathEscape(segment)
	}

	return Scheme + "://" + RootSegment + "/" + strings.Join(escaped, "/")
}

// DesktopID forces the .desktop suffix onto an application id.
func DesktopID(id string) string {
	if strings.HasSuffix(id, DesktopSuffix) {
		return id
	}

	return id + DesktopSuffix
}
