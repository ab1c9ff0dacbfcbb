package registry

import (
	"fmt"

	packageurl "github.com/package-url/packageurl-go"
)

// Coordinate formats a package coordinate as a PURL, e.g.
// "pkg:cargo/rand@0.9.2". Version may be empty.
func Coordinate(name, version string) string {
	return packageurl.NewPackageURL(Ecosystem, "", name, version, nil, "").ToString()
}

// ParseCoordinate parses either a PURL ("pkg:cargo/rand@0.9.2") or a
// bare "name@version" / "name" coordinate into its components.
func ParseCoordinate(s string) (name, version string, err error) {
	if len(s) > 4 && s[:4] == "pkg:" {
		p, err := packageurl.FromString(s)
		if err != nil {
			return "", "", fmt.Errorf("invalid package URL %q: %w", s, err)
		}
		if p.Type != Ecosystem {
			return "", "", fmt.Errorf("unsupported PURL type %q (expected %s)", p.Type, Ecosystem)
		}
		return p.Name, p.Version, nil
	}

	for i := 0; i < len(s); i++ {
		if s[i] == '@' {
			return s[:i], s[i+1:], nil
		}
	}
	return s, "", nil
}
