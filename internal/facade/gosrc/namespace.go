package gosrc

import (
	"strings"
	"unicode"

	"golang.org/x/mod/module"
)

// namer turns import paths into dotted namespaces.
type namer struct {
	// modulePath and prefix re-root the packages of the main module when prefix is set.
	modulePath string
	prefix     string
	cache      map[string]string
}

func newNamer(modulePath, prefix string) *namer {
	return &namer{modulePath: modulePath, prefix: strings.Trim(prefix, "."), cache: map[string]string{}}
}

// Namespace maps an import path to a namespace. Packages of the main module are placed
// under the prefix when one is configured; every other path is written reverse-domain
// first, so github.com/acme/shop/v2/model becomes com.github.acme.shop.model.
func (n *namer) Namespace(importPath string) string {
	if ns, ok := n.cache[importPath]; ok {
		return ns
	}
	ns := n.namespace(importPath)
	n.cache[importPath] = ns
	return ns
}

func (n *namer) namespace(importPath string) string {
	if n.prefix != "" && n.modulePath != "" {
		if rel, ok := relativeTo(importPath, n.modulePath); ok {
			return joinDots(append([]string{n.prefix}, segments(stripMajor(rel))...)...)
		}
	}
	parts := strings.Split(stripMajor(importPath), "/")
	if len(parts) > 0 && strings.Contains(parts[0], ".") {
		domain := strings.Split(parts[0], ".")
		for i, j := 0, len(domain)-1; i < j; i, j = i+1, j-1 {
			domain[i], domain[j] = domain[j], domain[i]
		}
		parts = append(domain, parts[1:]...)
	}
	return joinDots(segments(strings.Join(parts, "/"))...)
}

func relativeTo(importPath, modulePath string) (string, bool) {
	if importPath == modulePath {
		return "", true
	}
	rel, ok := strings.CutPrefix(importPath, modulePath+"/")
	return rel, ok
}

// stripMajor removes major version elements such as /v2 from p.
func stripMajor(p string) string {
	if p == "" {
		return p
	}
	elems := strings.Split(p, "/")
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		if i > 0 && isMajor(strings.Join(elems[:i+1], "/")) {
			continue
		}
		out = append(out, e)
	}
	return strings.Join(out, "/")
}

func isMajor(prefix string) bool {
	_, major, ok := module.SplitPathVersion(prefix)
	return ok && major != "" && !strings.HasPrefix(major, ".")
}

func segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s == "" {
			continue
		}
		out = append(out, identifier(s))
	}
	return out
}

// identifier replaces characters that cannot appear in a namespace segment.
func identifier(s string) string {
	b := []rune(s)
	for i, r := range b {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			b[i] = '_'
		}
	}
	if len(b) > 0 && unicode.IsDigit(b[0]) {
		return "_" + string(b)
	}
	return string(b)
}

func joinDots(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}
