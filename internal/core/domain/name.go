package domain

import (
	"cmp"
	"unique"
)

// Name is an interned identifier for dependencies, options and settings axes.
// The same dependency or option name is repeated across requirements, recipes,
// overrides and resolved sets, so every occurrence shares one handle.
type Name struct {
	h unique.Handle[string]
}

// NewName interns s.
func NewName(s string) Name {
	return Name{h: unique.Make(s)}
}

// NewNames interns every element of s.
func NewNames(s []string) []Name {
	res := make([]Name, len(s))
	for i, v := range s {
		res[i] = NewName(v)
	}
	return res
}

// String returns the underlying string value.
func (n Name) String() string {
	var zero unique.Handle[string]
	if n.h == zero {
		return ""
	}
	return n.h.Value()
}

// IsZero reports whether n is the zero Name or the empty string.
func (n Name) IsZero() bool {
	return n.String() == ""
}

// Compare orders names lexically by their string value.
func (n Name) Compare(other Name) int {
	return cmp.Compare(n.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	n.h = unique.Make(string(text))
	return nil
}
