package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Well-known settings axes.
const (
	SettingOS        = "os"
	SettingArch      = "arch"
	SettingCompiler  = "compiler"
	SettingBuildType = "build_type"
)

// Setting is one axis with its value.
type Setting struct {
	Axis  Name
	Value string
}

// Settings holds the value of every declared settings axis, in declaration order.
type Settings struct {
	values []Setting
}

// NewSettings picks a value for every axis from candidates.
// It fails with ErrUnsetSetting when an axis has no candidate value.
func NewSettings(axes []Name, candidates map[string]string) (Settings, error) {
	values := make([]Setting, 0, len(axes))
	for _, axis := range axes {
		value := strings.TrimSpace(candidates[axis.String()])
		if value == "" {
			return Settings{}, invalid(zerr.With(ErrUnsetSetting, "axis", axis.String()))
		}
		values = append(values, Setting{Axis: axis, Value: value})
	}
	return Settings{values: values}, nil
}

// Get returns the value of axis.
func (s Settings) Get(axis string) (string, bool) {
	for _, v := range s.values {
		if v.Axis.String() == axis {
			return v.Value, true
		}
	}
	return "", false
}

// All yields the settings in declaration order.
func (s Settings) All() iter.Seq[Setting] {
	return slices.Values(s.values)
}

// Len returns the number of settings.
func (s Settings) Len() int {
	return len(s.values)
}

// ParseSettingOverride parses "axis=value" (e.g., "build_type=Debug").
func ParseSettingOverride(raw string) (string, string, error) {
	axis, value, ok := strings.Cut(raw, "=")
	axis = strings.TrimSpace(axis)
	value = strings.TrimSpace(value)
	if !ok || axis == "" || value == "" {
		return "", "", invalid(zerr.With(ErrInvalidSettingOverride, "setting", raw))
	}
	return axis, value, nil
}
