package catalog

import "strings"

// Resolver maps site-relative asset paths onto the configured public base.
// An empty Base leaves paths untouched.
type Resolver struct{ Base string }

func (r Resolver) Resolve(path string) string {
	base := strings.TrimSpace(r.Base)
	if base == "" || path == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func (r Resolver) ResolveAll(paths ...string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = r.Resolve(p)
	}
	return out
}
