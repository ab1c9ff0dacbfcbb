// Package profile provides built-in build profiles and the overlay
// merge that produces effective options from workspace and package
// overrides.
package profile

// Well-known profile names. Any other name is a custom profile and
// starts from the dev baseline.
const (
	Dev     = "dev"
	Release = "release"
)

// Options maps an option name to its value. Values are whatever the
// manifest declared (integers, booleans, strings); option names are not
// validated against a closed set.
type Options map[string]any

// Clone returns a shallow copy of the options.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Defaults returns the built-in options for a profile name. Custom
// profile names inherit the dev baseline.
func Defaults(name string) Options {
	if name == Release {
		return Options{
			"opt-level":        3,
			"debug":            false,
			"debug-assertions": false,
			"overflow-checks":  false,
			"lto":              false,
			"codegen-units":    16,
			"incremental":      false,
			"panic":            "unwind",
			"strip":            "none",
		}
	}
	return Options{
		"opt-level":        0,
		"debug":            true,
		"debug-assertions": true,
		"overflow-checks":  true,
		"lto":              false,
		"codegen-units":    256,
		"incremental":      true,
		"panic":            "unwind",
		"strip":            "none",
	}
}

// Merge produces the effective options for a profile: built-in defaults
// overlaid by the workspace override, overlaid by the package override.
// The package wins on conflict. Unknown option names in either override
// are carried through unchanged.
func Merge(name string, pkg, ws Options) Options {
	out := Defaults(name)
	for k, v := range ws {
		out[k] = v
	}
	for k, v := range pkg {
		out[k] = v
	}
	return out
}
