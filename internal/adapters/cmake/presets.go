package cmake

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Generator = (*PresetsGenerator)(nil)

// presetsSchemaVersion is the first CMakePresets.json version supporting toolchainFile.
const presetsSchemaVersion = 3

type presetsFile struct {
	Version          int               `json:"version"`
	CMakeMinimum     cmakeVersion      `json:"cmakeMinimumRequired"`
	ConfigurePresets []configurePreset `json:"configurePresets"`
	BuildPresets     []buildPreset     `json:"buildPresets"`
	Vendor           vendor            `json:"vendor"`
}

type cmakeVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

type configurePreset struct {
	Name           string            `json:"name"`
	DisplayName    string            `json:"displayName"`
	BinaryDir      string            `json:"binaryDir"`
	ToolchainFile  string            `json:"toolchainFile"`
	CacheVariables map[string]string `json:"cacheVariables,omitempty"`
}

type buildPreset struct {
	Name            string `json:"name"`
	ConfigurePreset string `json:"configurePreset"`
}

type vendor struct {
	Kiln vendorKiln `json:"kiln"`
}

type vendorKiln struct {
	Package     string `json:"package"`
	Fingerprint string `json:"fingerprint"`
}

// PresetsGenerator writes a CMakePresets.json with one configure preset using the toolchain file.
type PresetsGenerator struct{}

// NewPresetsGenerator creates a new PresetsGenerator.
func NewPresetsGenerator() *PresetsGenerator {
	return &PresetsGenerator{}
}

// Kind implements ports.Generator.
func (g *PresetsGenerator) Kind() domain.GeneratorKind {
	return domain.GeneratorCMakePresets
}

// FileName implements ports.Generator.
func (g *PresetsGenerator) FileName() string {
	return PresetsFileName
}

// Generate implements ports.Generator.
func (g *PresetsGenerator) Generate(input *domain.GenerationInput) (domain.Artifact, error) {
	name := "kiln"
	binaryDir := "${sourceDir}/build"
	displayName := input.Descriptor.Name() + " " + input.Descriptor.Version()
	var cache map[string]string

	if buildType, ok := input.Settings.Get(domain.SettingBuildType); ok {
		lower := strings.ToLower(buildType)
		name += "-" + lower
		binaryDir += "/" + lower
		displayName += " (" + buildType + ")"
		cache = map[string]string{"CMAKE_BUILD_TYPE": buildType}
	}

	file := presetsFile{
		Version:      presetsSchemaVersion,
		CMakeMinimum: cmakeVersion{Major: 3, Minor: 21},
		ConfigurePresets: []configurePreset{{
			Name:           name,
			DisplayName:    displayName,
			BinaryDir:      binaryDir,
			ToolchainFile:  filepath.ToSlash(filepath.Join(input.OutputDir, ToolchainFileName)),
			CacheVariables: cache,
		}},
		BuildPresets: []buildPreset{{Name: name, ConfigurePreset: name}},
		Vendor: vendor{Kiln: vendorKiln{
			Package:     input.Descriptor.Name() + "/" + input.Descriptor.Version(),
			Fingerprint: input.Fingerprint,
		}},
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return domain.Artifact{}, zerr.Wrap(err, "failed to encode presets")
	}

	return domain.Artifact{
		Kind:     g.Kind(),
		FileName: g.FileName(),
		Content:  append(data, '\n'),
	}, nil
}
