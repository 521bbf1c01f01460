package fmri

import (
	"fmt"
	"strconv"
	"strings"
)

const prefix = "sas://"

// VersionCheck fails ErrVersionUnsupported if v exceeds the version this
// package knows how to handle.
func VersionCheck(v uint8) error {
	if v > Version {
		return fmt.Errorf("%w: %d", ErrVersionUnsupported, v)
	}
	return nil
}

func validateShape(n NVL) error {
	if n.Authority.Type != TypePath && n.Authority.Type != TypePathnode {
		return fmt.Errorf("%w: authority.type must be path or pathnode", ErrMalformedNVL)
	}
	switch n.Authority.Type {
	case TypePathnode:
		if len(n.SASPath) != 1 {
			return fmt.Errorf("%w: pathnode fmri must have exactly one sas-path element", ErrMalformedNVL)
		}
	case TypePath:
		if len(n.SASPath) < 4 {
			return fmt.Errorf("%w: path fmri must have at least four sas-path elements", ErrMalformedNVL)
		}
	}
	if len(n.SASPath) == 0 {
		return fmt.Errorf("%w: sas-path is empty", ErrMalformedNVL)
	}
	if n.Authority.Type == TypePath {
		if err := validatePathShape(n.SASPath); err != nil {
			return err
		}
	}
	return nil
}

// validatePathShape enforces the initiator, port, (port, expander, port)*,
// port, target alternation, with zero, one, or two expander groups (the
// SAS spec's two-level expander limit, I4).
func validatePathShape(path []PathComponent) error {
	last := len(path) - 1
	if path[0].Name != NameInitiator {
		return fmt.Errorf("%w: path must start with initiator", ErrMalformedNVL)
	}
	if path[1].Name != NamePort {
		return fmt.Errorf("%w: path must follow initiator with port", ErrMalformedNVL)
	}
	if path[last].Name != NameTarget {
		return fmt.Errorf("%w: path must end with target", ErrMalformedNVL)
	}
	if path[last-1].Name != NamePort {
		return fmt.Errorf("%w: path must precede target with port", ErrMalformedNVL)
	}
	middle := path[2 : last-1]
	if len(middle)%3 != 0 {
		return fmt.Errorf("%w: malformed expander group in path", ErrMalformedNVL)
	}
	groups := len(middle) / 3
	if groups > 2 {
		return fmt.Errorf("%w: path has more than two expander groups", ErrMalformedNVL)
	}
	for g := 0; g < groups; g++ {
		trio := middle[g*3 : g*3+3]
		if trio[0].Name != NamePort || trio[1].Name != NameExpander || trio[2].Name != NamePort {
			return fmt.Errorf("%w: malformed expander group in path", ErrMalformedNVL)
		}
	}
	return nil
}

// bufferSize computes the exact length of Encode's output in a first pass,
// mirroring fmri_bufsz in the original sas.c plugin so Encode can allocate
// its builder's backing array exactly once.
func bufferSize(n NVL) int {
	size := 0
	if n.Authority.HasPhyRange {
		size += len(fmt.Sprintf("%s%s=%s:%s=%d:%s=%d", prefix, "type", n.Authority.Type,
			"start-phy", n.Authority.StartPhy, "end-phy", n.Authority.EndPhy))
	} else {
		size += len(fmt.Sprintf("%s%s=%s", prefix, "type", n.Authority.Type))
	}
	for _, pc := range n.SASPath {
		size += len(fmt.Sprintf("/%s=%x", pc.Name, pc.ID))
	}
	return size
}

// Encode renders a structured FMRI to its canonical textual form.
func Encode(n NVL) (string, error) {
	if err := VersionCheck(n.Version); err != nil {
		return "", err
	}
	if err := validateShape(n); err != nil {
		return "", err
	}

	size := bufferSize(n)
	var b strings.Builder
	b.Grow(size)

	if n.Authority.HasPhyRange {
		fmt.Fprintf(&b, "%s%s=%s:%s=%d:%s=%d", prefix, "type", n.Authority.Type,
			"start-phy", n.Authority.StartPhy, "end-phy", n.Authority.EndPhy)
	} else {
		fmt.Fprintf(&b, "%s%s=%s", prefix, "type", n.Authority.Type)
	}
	for _, pc := range n.SASPath {
		fmt.Fprintf(&b, "/%s=%x", pc.Name, pc.ID)
	}

	return b.String(), nil
}

// Decode parses a textual FMRI into its structured form. It rejects any
// string that violates the grammar: a bad scheme prefix, an authority not
// terminated by '/', a path pair lacking '=', a non-strict-hex id, or an
// empty path.
func Decode(s string) (NVL, error) {
	if !strings.HasPrefix(s, prefix) {
		return NVL{}, fmt.Errorf("%w: missing %q prefix", ErrMalformedFMRI, prefix)
	}
	rest := s[len(prefix):]

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return NVL{}, fmt.Errorf("%w: authority not terminated by '/'", ErrMalformedFMRI)
	}
	authStr, pathStr := rest[:slash], rest[slash:]

	auth, err := decodeAuthority(authStr)
	if err != nil {
		return NVL{}, err
	}

	comps, err := decodePath(pathStr)
	if err != nil {
		return NVL{}, err
	}
	if len(comps) < 1 {
		return NVL{}, fmt.Errorf("%w: path has no components", ErrMalformedFMRI)
	}

	return NVL{
		Scheme:    Scheme,
		Version:   Version,
		Authority: auth,
		SASPath:   comps,
	}, nil
}

func decodeAuthority(authStr string) (Authority, error) {
	var auth Authority
	var haveStart, haveEnd bool

	for i, field := range strings.Split(authStr, ":") {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			return Authority{}, fmt.Errorf("%w: authority field %q lacks '='", ErrMalformedFMRI, field)
		}
		if (key == "type" && i != 0) || (key == "start-phy" && i != 1) || (key == "end-phy" && i != 2) {
			return Authority{}, fmt.Errorf("%w: authority field %q out of order", ErrMalformedFMRI, key)
		}
		switch key {
		case "type":
			t := AuthorityType(val)
			if t != TypePath && t != TypePathnode {
				return Authority{}, fmt.Errorf("%w: unknown authority type %q", ErrMalformedFMRI, val)
			}
			auth.Type = t
		case "start-phy":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return Authority{}, fmt.Errorf("%w: bad start-phy %q", ErrMalformedFMRI, val)
			}
			auth.StartPhy = uint32(n)
			haveStart = true
		case "end-phy":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return Authority{}, fmt.Errorf("%w: bad end-phy %q", ErrMalformedFMRI, val)
			}
			auth.EndPhy = uint32(n)
			haveEnd = true
		default:
			return Authority{}, fmt.Errorf("%w: unknown authority field %q", ErrMalformedFMRI, key)
		}
	}

	if auth.Type == "" {
		return Authority{}, fmt.Errorf("%w: authority missing type", ErrMalformedFMRI)
	}
	if haveStart != haveEnd {
		return Authority{}, fmt.Errorf("%w: start-phy/end-phy must appear together", ErrMalformedFMRI)
	}
	auth.HasPhyRange = haveStart && haveEnd

	return auth, nil
}

func decodePath(pathStr string) ([]PathComponent, error) {
	// pathStr begins with '/'; strings.Split on '/' yields a leading
	// empty element which we drop. Any other empty element (from "//" or
	// a trailing '/') is a component lacking '='.
	parts := strings.Split(pathStr, "/")[1:]
	comps := make([]PathComponent, 0, len(parts))
	for _, p := range parts {
		name, idStr, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("%w: path component %q lacks '='", ErrMalformedFMRI, p)
		}
		switch Name(name) {
		case NameInitiator, NamePort, NameExpander, NameTarget:
		default:
			return nil, fmt.Errorf("%w: unknown path component name %q", ErrMalformedFMRI, name)
		}
		id, err := parseHex64(idStr)
		if err != nil {
			return nil, err
		}
		comps = append(comps, PathComponent{Name: Name(name), ID: id})
	}
	return comps, nil
}

// parseHex64 accepts only a strict lowercase hex id with no "0x" prefix,
// no leading/trailing garbage, and at most 16 digits, per the hex64
// grammar production.
func parseHex64(s string) (uint64, error) {
	if s == "" || len(s) > 16 {
		return 0, fmt.Errorf("%w: invalid hex id %q", ErrMalformedFMRI, s)
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return 0, fmt.Errorf("%w: invalid hex id %q", ErrMalformedFMRI, s)
		}
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid hex id %q", ErrMalformedFMRI, s)
	}
	return v, nil
}

// Construct builds a single-element pathnode FMRI for the given vertex
// name/instance, the way topo_mod_sasfmri/sas_fmri_create do for a newly
// created vertex.
func Construct(name Name, inst uint64, auth Authority) (NVL, error) {
	if auth.Type == "" {
		auth.Type = TypePathnode
	}
	n := NVL{
		Scheme:    Scheme,
		Version:   Version,
		Authority: auth,
		SASPath:   []PathComponent{{Name: name, ID: inst}},
	}
	if err := validateShape(n); err != nil {
		return NVL{}, err
	}
	return n, nil
}
