package domain

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

type optionKind uint8

const (
	optionString optionKind = iota
	optionBool
)

// OptionValue is a bool or string option value. It is comparable.
type OptionValue struct {
	kind optionKind
	b    bool
	s    string
}

// BoolOption returns a boolean option value.
func BoolOption(b bool) OptionValue {
	return OptionValue{kind: optionBool, b: b}
}

// StringOption returns a string option value.
func StringOption(s string) OptionValue {
	return OptionValue{kind: optionString, s: s}
}

// ParseOptionValue interprets raw the way descriptors spell option values:
// "true"/"True" and "false"/"False" are booleans, anything else is kept as a string.
func ParseOptionValue(raw string) OptionValue {
	switch strings.TrimSpace(raw) {
	case "true", "True", "TRUE":
		return BoolOption(true)
	case "false", "False", "FALSE":
		return BoolOption(false)
	default:
		return StringOption(raw)
	}
}

// IsBool reports whether v holds a boolean.
func (v OptionValue) IsBool() bool {
	return v.kind == optionBool
}

// Bool returns the boolean value and whether v holds one.
func (v OptionValue) Bool() (value, ok bool) {
	return v.b, v.kind == optionBool
}

// String returns the value as it would be written in a descriptor.
func (v OptionValue) String() string {
	if v.kind == optionBool {
		return strconv.FormatBool(v.b)
	}
	return v.s
}

// CMake renders the value for a CMake script: ON/OFF for booleans, a quoted string otherwise.
func (v OptionValue) CMake() string {
	if v.kind == optionBool {
		if v.b {
			return "ON"
		}
		return "OFF"
	}
	return strconv.Quote(v.s)
}

// Truthy reports whether v is boolean true.
func (v OptionValue) Truthy() bool {
	return v.kind == optionBool && v.b
}

// OptionKey identifies one option of one dependency.
type OptionKey struct {
	Dependency Name
	Option     Name
}

// NewOptionKey builds a key from plain strings.
func NewOptionKey(dependency, option string) OptionKey {
	return OptionKey{Dependency: NewName(dependency), Option: NewName(option)}
}

// String returns the key as "dependency:option".
func (k OptionKey) String() string {
	return k.Dependency.String() + ":" + k.Option.String()
}

// Compare orders keys by dependency, then option.
func (k OptionKey) Compare(other OptionKey) int {
	if c := k.Dependency.Compare(other.Dependency); c != 0 {
		return c
	}
	return k.Option.Compare(other.Option)
}

// OverrideOrigin records where an override was declared.
type OverrideOrigin string

const (
	// OriginDescriptor marks overrides declared in kiln.yaml.
	OriginDescriptor OverrideOrigin = "descriptor"
	// OriginCommandLine marks overrides passed with -o.
	OriginCommandLine OverrideOrigin = "command-line"
)

// OptionOverride sets one option of one dependency.
type OptionOverride struct {
	Key    OptionKey
	Value  OptionValue
	Origin OverrideOrigin
}

// ParseOptionOverride parses "dependency:option=value" (e.g., "arrow:shared=True").
func ParseOptionOverride(raw string, origin OverrideOrigin) (OptionOverride, error) {
	target, value, ok := strings.Cut(raw, "=")
	if !ok {
		return OptionOverride{}, invalid(zerr.With(ErrInvalidOverride, "override", raw))
	}
	dep, option, ok := strings.Cut(target, ":")
	dep = strings.TrimSpace(dep)
	option = strings.TrimSpace(option)
	if !ok || dep == "" || option == "" {
		return OptionOverride{}, invalid(zerr.With(ErrInvalidOverride, "override", raw))
	}
	return OptionOverride{
		Key:    NewOptionKey(dep, option),
		Value:  ParseOptionValue(strings.TrimSpace(value)),
		Origin: origin,
	}, nil
}

// OptionDefault is a recipe-declared default value.
type OptionDefault struct {
	Name  Name
	Value OptionValue
}

// OptionSource records whether a resolved value came from a default or an override.
type OptionSource string

const (
	// SourceDefault marks values taken from the recipe defaults.
	SourceDefault OptionSource = "default"
	// SourceOverride marks values set by an override.
	SourceOverride OptionSource = "override"
)

// ResolvedOption is one final option value.
type ResolvedOption struct {
	Key    OptionKey
	Value  OptionValue
	Source OptionSource
}

// OptionConflict records an override that replaced an earlier override of the same key
// with a different value.
type OptionConflict struct {
	Key      OptionKey
	Previous OptionValue
	Value    OptionValue
}

// ResolvedOptionSet maps option keys to their final values.
// It is read-only; iteration is ordered by dependency, then option name.
type ResolvedOptionSet struct {
	options []ResolvedOption
	index   map[OptionKey]int
}

// NewResolvedOptionSet builds a set from options. A key appearing twice keeps the later entry.
func NewResolvedOptionSet(options ...ResolvedOption) *ResolvedOptionSet {
	latest := make(map[OptionKey]ResolvedOption, len(options))
	for _, opt := range options {
		latest[opt.Key] = opt
	}

	sorted := make([]ResolvedOption, 0, len(latest))
	for _, opt := range latest {
		sorted = append(sorted, opt)
	}
	slices.SortFunc(sorted, func(a, b ResolvedOption) int {
		return a.Key.Compare(b.Key)
	})

	index := make(map[OptionKey]int, len(sorted))
	for i, opt := range sorted {
		index[opt.Key] = i
	}
	return &ResolvedOptionSet{options: sorted, index: index}
}

// Len returns the number of resolved options.
func (s *ResolvedOptionSet) Len() int {
	return len(s.options)
}

// Lookup returns the resolved option for key.
func (s *ResolvedOptionSet) Lookup(key OptionKey) (ResolvedOption, bool) {
	i, ok := s.index[key]
	if !ok {
		return ResolvedOption{}, false
	}
	return s.options[i], true
}

// Get returns the value of option for dependency.
func (s *ResolvedOptionSet) Get(dependency, option string) (OptionValue, bool) {
	opt, ok := s.Lookup(NewOptionKey(dependency, option))
	return opt.Value, ok
}

// All yields every resolved option in order.
func (s *ResolvedOptionSet) All() iter.Seq[ResolvedOption] {
	return func(yield func(ResolvedOption) bool) {
		for _, opt := range s.options {
			if !yield(opt) {
				return
			}
		}
	}
}

// For yields the resolved options of one dependency in order.
func (s *ResolvedOptionSet) For(dependency Name) iter.Seq[ResolvedOption] {
	return func(yield func(ResolvedOption) bool) {
		for _, opt := range s.options {
			if opt.Key.Dependency != dependency {
				continue
			}
			if !yield(opt) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same keys, values and sources.
func (s *ResolvedOptionSet) Equal(other *ResolvedOptionSet) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.Equal(s.options, other.options)
}
