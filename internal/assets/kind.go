package assets

import (
	"fmt"
	"strings"
)

// Kind selects the asset family a job works on.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ParseKind validates a configured kind name.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindImage:
		return KindImage, nil
	case KindVideo:
		return KindVideo, nil
	default:
		return "", fmt.Errorf("unknown asset kind %q", value)
	}
}

// ExtensionSet is a set of lowercase extensions including the leading dot.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set, normalizing case and the leading dot.
func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Has reports whether ext (any case) is in the set.
func (s ExtensionSet) Has(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}

// ImageExtensions returns the artwork allow-list.
func ImageExtensions() ExtensionSet {
	return NewExtensionSet(".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif")
}

// VideoExtensions returns the preview video allow-list.
func VideoExtensions() ExtensionSet {
	return NewExtensionSet(".mp4", ".m4v", ".mov", ".avi", ".mkv")
}

// Extensions returns the allow-list for k.
func (k Kind) Extensions() ExtensionSet {
	if k == KindVideo {
		return VideoExtensions()
	}
	return ImageExtensions()
}
