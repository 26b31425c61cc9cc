package store

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("store: invalid key")
)

// joinPath appends name to a slash-separated namespace path as exactly one
// segment. An empty name yields parent unchanged.
func joinPath(parent, name string) string {
	seg := escapeSegment(name)
	if seg == "" {
		return parent
	}
	if parent == "" {
		return seg
	}
	return parent + "/" + seg
}

// escapeSegment makes name safe as a single path element on every backend:
// separators are percent-encoded and the dot names cannot climb out of the
// root directory of a File store.
func escapeSegment(name string) string {
	name = strings.TrimSpace(name)
	switch name {
	case "":
		return ""
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(name)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
