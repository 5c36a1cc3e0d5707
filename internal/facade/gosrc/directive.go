package gosrc

import (
	"go/ast"
	"strings"
)

// DirectivePrefix starts an annotation comment: //kgen:Entity internal=true. gofmt rewrites
// doc comment lines of that form to "// kgen:Entity", which is accepted as well.
const DirectivePrefix = "//kgen:"

// AnnotationNamespace qualifies directive names into annotation kinds.
const AnnotationNamespace = "kgen"

// TypesAttr is the directive attribute holding a comma separated list of type names.
const TypesAttr = "value"

type directive struct {
	name  string
	attrs map[string]string
}

// directives reads //kgen: lines from the raw comments of every group, since
// CommentGroup.Text drops directive lines.
func directives(groups ...*ast.CommentGroup) []directive {
	var out []directive
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if d, ok := parseDirective(c.Text); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

func parseDirective(line string) (directive, bool) {
	text, ok := strings.CutPrefix(line, "//")
	if !ok {
		return directive{}, false
	}
	rest, ok := strings.CutPrefix("//"+strings.TrimLeft(text, " \t"), DirectivePrefix)
	if !ok {
		return directive{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return directive{}, false
	}
	d := directive{name: fields[0], attrs: map[string]string{}}
	for _, f := range fields[1:] {
		k, v, found := strings.Cut(f, "=")
		if !found {
			v = "true"
		}
		d.attrs[k] = strings.Trim(v, `"`)
	}
	return d, true
}

func (d directive) kind() string {
	return AnnotationNamespace + "." + d.name
}

// typeNames splits the value attribute.
func (d directive) typeNames() ([]string, bool) {
	v, ok := d.attrs[TypesAttr]
	if !ok {
		return nil, false
	}
	var out []string
	for _, n := range strings.Split(v, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out, true
}

func scalar(v string) any {
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}
