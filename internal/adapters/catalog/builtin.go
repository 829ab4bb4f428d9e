package catalog

import "go.trai.ch/kiln/internal/core/domain"

func opt(name string, value bool) domain.OptionDefault {
	return domain.OptionDefault{Name: domain.NewName(name), Value: domain.BoolOption(value)}
}

// Builtin returns the recipes kiln ships with, keyed by dependency name.
func Builtin() map[domain.Name]domain.Recipe {
	recipes := []domain.Recipe{
		{
			Name:     domain.NewName("arrow"),
			Versions: ">=10.0.0",
			Defaults: []domain.OptionDefault{
				opt("shared", false),
				opt("fPIC", true),
				opt("parquet", false),
				opt("compute", false),
				opt("with_zstd", false),
				opt("with_snappy", false),
				opt("with_json", false),
			},
			CMake: domain.CMakeInfo{
				FileName: "Arrow",
				Targets: []domain.CMakeTarget{
					{
						Name:    "Arrow::arrow_{linkage}",
						Library: "arrow",
					},
					{
						Name:      "Parquet::parquet_{linkage}",
						Library:   "parquet",
						Component: "parquet",
						EnabledBy: "parquet",
						Requires:  []string{"Arrow::arrow_{linkage}"},
					},
				},
			},
		},
		{
			Name:     domain.NewName("zlib"),
			Versions: ">=1.2.11",
			Defaults: []domain.OptionDefault{
				opt("shared", false),
				opt("fPIC", true),
			},
			CMake: domain.CMakeInfo{
				FileName: "ZLIB",
				Targets: []domain.CMakeTarget{
					{Name: "ZLIB::ZLIB", Library: "z"},
				},
			},
		},
		{
			Name:     domain.NewName("zstd"),
			Versions: ">=1.5.0",
			Defaults: []domain.OptionDefault{
				opt("shared", false),
				opt("fPIC", true),
				opt("build_programs", true),
			},
			CMake: domain.CMakeInfo{
				FileName: "zstd",
				Targets: []domain.CMakeTarget{
					{Name: "zstd::libzstd_{linkage}", Library: "zstd"},
				},
			},
		},
	}

	out := make(map[domain.Name]domain.Recipe, len(recipes))
	for _, r := range recipes {
		out[r.Name] = r
	}
	return out
}
