package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Bundle file naming errors.
var (
	ErrNotBundleFile   = errors.New("not a report bundle file")
	ErrBadElementTag   = errors.New("unknown element tag")
	ErrBadIdentityName = errors.New("malformed exporter identity")
)

// BundleFile describes one element file within an export bundle. The
// exporter names files "<name>.<element>.<format>_<major>.fbx"; the
// "<format>_<major>" infix is the exporter identity used for registry
// lookup (for example "3dm_6").
type BundleFile struct {
	Path     string
	Name     string // logical model name
	Element  ElementCategory
	Identity string // exporter identity, e.g. "3dm_6"
}

// ParseBundleFile parses an exported file path into its bundle components.
// Files that do not follow the naming contract return ErrNotBundleFile so
// callers can skip unrelated content in the same directory.
func ParseBundleFile(path string) (BundleFile, error) {
	base := filepath.Base(path)

	stem, ok := strings.CutSuffix(base, ".fbx")
	if !ok {
		return BundleFile{}, fmt.Errorf("%w: %q has no .fbx suffix", ErrNotBundleFile, base)
	}

	// Split off the exporter identity, e.g. "model.places.3dm_6" -> "3dm_6".
	rest, identity, found := cutLastDot(stem)
	if !found {
		return BundleFile{}, fmt.Errorf("%w: %q", ErrNotBundleFile, base)
	}
	if err := validateIdentity(identity); err != nil {
		return BundleFile{}, err
	}

	name, tag, found := cutLastDot(rest)
	if !found {
		return BundleFile{}, fmt.Errorf("%w: %q has no element tag", ErrNotBundleFile, base)
	}
	element, ok := ParseElementTag(tag)
	if !ok {
		return BundleFile{}, fmt.Errorf("%w: %q", ErrBadElementTag, tag)
	}

	return BundleFile{
		Path:     path,
		Name:     name,
		Element:  element,
		Identity: identity,
	}, nil
}

// validateIdentity checks the "<formatName>_<majorVersion>" identity shape.
func validateIdentity(identity string) error {
	name, version, found := strings.Cut(identity, "_")
	if !found || name == "" || version == "" {
		return fmt.Errorf("%w: %q", ErrBadIdentityName, identity)
	}
	for _, r := range version {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrBadIdentityName, identity)
		}
	}
	return nil
}

func cutLastDot(s string) (before, after string, found bool) {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}
