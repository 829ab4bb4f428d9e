// Package fs implements fingerprinting and artifact persistence on the local filesystem.
package fs

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing for generation inputs and artifact content.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint computes a single hash representing everything generators read.
// The output folder is not part of it; artifacts refer to each other relatively.
func (h *Hasher) Fingerprint(input *domain.GenerationInput) string {
	hasher := xxhash.New()

	h.hashDescriptor(input.Descriptor, hasher)
	h.hashSettings(input.Settings, hasher)
	h.hashDependencies(input.Dependencies, hasher)
	h.hashOptions(input.Options, hasher)

	return format(hasher.Sum64())
}

// HashContent returns the content hash used to detect unchanged artifacts.
func (h *Hasher) HashContent(content []byte) string {
	return format(xxhash.Sum64(content))
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return format(hasher.Sum64()), nil
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

func (h *Hasher) hashDescriptor(d *domain.PackageDescriptor, hasher *xxhash.Digest) {
	if d == nil {
		_, _ = hasher.Write([]byte{0})
		return
	}
	_, _ = hasher.WriteString(d.Name())
	_, _ = hasher.Write([]byte{0}) // Separator
	_, _ = hasher.WriteString(d.Version())
	_, _ = hasher.Write([]byte{0})

	for _, axis := range d.Settings() {
		_, _ = hasher.WriteString(axis.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	for _, req := range d.Requirements() {
		_, _ = hasher.WriteString(req.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashSettings hashes settings in declaration order.
func (h *Hasher) hashSettings(settings domain.Settings, hasher *xxhash.Digest) {
	for s := range settings.All() {
		_, _ = hasher.WriteString(s.Axis.String())
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(s.Value)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashDependencies hashes dependencies sorted by name.
func (h *Hasher) hashDependencies(deps []domain.ResolvedDependency, hasher *xxhash.Digest) {
	sorted := slices.Clone(deps)
	slices.SortFunc(sorted, func(a, b domain.ResolvedDependency) int {
		return a.Name().Compare(b.Name())
	})

	for _, dep := range sorted {
		_, _ = hasher.WriteString(dep.Requirement.String())
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(dep.Prefix)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(dep.Recipe.PackageName())
		_, _ = hasher.Write([]byte{0})
		for _, t := range dep.Recipe.CMake.Targets {
			_, _ = hasher.WriteString(t.Name)
			_, _ = hasher.Write([]byte{':'})
			_, _ = hasher.WriteString(t.Library)
			_, _ = hasher.Write([]byte{':'})
			_, _ = hasher.WriteString(t.Component)
			_, _ = hasher.Write([]byte{':'})
			_, _ = hasher.WriteString(t.EnabledBy)
			for _, r := range t.Requires {
				_, _ = hasher.Write([]byte{','})
				_, _ = hasher.WriteString(r)
			}
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashOptions hashes resolved options in the set's deterministic order.
func (h *Hasher) hashOptions(set *domain.ResolvedOptionSet, hasher *xxhash.Digest) {
	if set == nil {
		_, _ = hasher.Write([]byte{0})
		return
	}
	for opt := range set.All() {
		_, _ = hasher.WriteString(opt.Key.String())
		_, _ = hasher.Write([]byte{'='})
		// Distinguish bool true from string "true"
		if opt.Value.IsBool() {
			_, _ = hasher.Write([]byte{'b'})
		} else {
			_, _ = hasher.Write([]byte{'s'})
		}
		_, _ = hasher.WriteString(opt.Value.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
