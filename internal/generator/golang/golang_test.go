package golang

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/element/mem"
	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/model"
	"github.com/Litote/kgenerator/pkg/translator"
)

func classes(t *testing.T) *model.ClassSet {
	t.Helper()
	u := mem.New()
	env := model.NewEnv(u, translator.New())
	str := u.Plain("java.lang.String")
	priv := mem.WithModifiers(element.ModifierPrivate)
	person := u.Class("org.example.shop.Person", mem.WithMembers(
		mem.Field("name", str, priv),
		mem.Method("getName", str, priv),
		mem.Field("tags", u.Parameterized("java.util.List", str)),
		mem.Field("nick", str.Annotated(element.NewAnnotation(element.Nullable, nil))),
	))
	order := u.Class("org.example.shop.Order", mem.WithMembers(
		mem.Field("lines", u.Parameterized("java.util.Map", str, u.Plain("int"))),
	))
	invoice := u.Class("org.example.billing.Invoice")
	return model.NewClassSet(
		model.NewClass(env, person, false),
		model.NewClass(env, invoice, false),
		model.NewClass(env, order, true),
	)
}

// literals collects the string literals of src.
func literals(t *testing.T, src string) (*ast.File, map[string]bool) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), FileName, src, parser.ParseComments)
	require.NoError(t, err, src)
	out := map[string]bool{}
	ast.Inspect(f, func(n ast.Node) bool {
		if lit, ok := n.(*ast.BasicLit); ok && lit.Kind == token.STRING {
			s, err := strconv.Unquote(lit.Value)
			require.NoError(t, err)
			out[s] = true
		}
		return true
	})
	return f, out
}

func declared(f *ast.File) []string {
	var out []string
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, s := range gd.Specs {
			switch s := s.(type) {
			case *ast.TypeSpec:
				out = append(out, s.Name.Name)
			case *ast.ValueSpec:
				for _, n := range s.Names {
					out = append(out, n.Name)
				}
			}
		}
	}
	return out
}

func TestGenerator_Render(t *testing.T) {
	set := classes(t)
	groups := byNamespace(set)
	require.Len(t, groups, 2)
	assert.Equal(t, "org.example.shop", groups[0].name)
	assert.Len(t, groups[0].classes, 2)
	assert.Equal(t, "org.example.billing", groups[1].name)

	src, err := New().Render(groups[0].name, groups[0].classes)
	require.NoError(t, err)

	f, lits := literals(t, src)
	assert.Equal(t, "shop", f.Name.Name)
	assert.Equal(t, []string{"Property", "PersonProperties", "OrderProperties", "Entities"}, declared(f))
	for _, want := range []string{
		"name", "kotlin.String", "private",
		"tags", "kotlin.collections.List<kotlin.String>", "direct",
		"kotlin.String?",
		"lines", "kotlin.collections.Map<kotlin.String, kotlin.Int>",
		"org.example.shop.Person", "org.example.shop.Order",
	} {
		assert.True(t, lits[want], "missing literal %q", want)
	}
	assert.Contains(t, src, "Code generated by kgenerator. DO NOT EDIT.")

	again, err := New().Render(groups[0].name, groups[0].classes)
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestGenerator_Generate(t *testing.T) {
	dir := t.TempDir()
	report := diag.Discard()
	r := &generator.Round{
		Classes: classes(t),
		Writer:  emit.New(dir, "", report),
		Report:  report,
		Options: generator.NewOptions(),
	}
	require.NoError(t, New().Generate(context.Background(), r))
	assert.Zero(t, report.Errors())

	for _, p := range []string{"org/example/shop", "org/example/billing"} {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p), FileName))
		require.NoError(t, err)
		literals(t, string(data))
	}
}

func TestGenerator_GenerateRounds(t *testing.T) {
	dir := t.TempDir()
	report := diag.Discard()
	w := emit.New(dir, "", report)
	g := New()

	round := func(n int, name string) *generator.Round {
		u := mem.New()
		env := model.NewEnv(u, translator.New())
		c := u.Class(name, mem.WithMembers(mem.Field("title", u.Plain("java.lang.String"))))
		return &generator.Round{
			Number:  n,
			Classes: model.NewClassSet(model.NewClass(env, c, false)),
			Writer:  w,
			Report:  report,
			Options: generator.NewOptions(),
		}
	}
	require.NoError(t, g.Generate(context.Background(), round(1, "org.example.library.Book")))
	require.NoError(t, g.Generate(context.Background(), round(2, "org.example.library.Shelf")))
	require.NoError(t, g.Generate(context.Background(), round(3, "org.example.library.Book")))
	assert.Zero(t, report.Errors())

	data, err := os.ReadFile(filepath.Join(dir, "org", "example", "library", FileName))
	require.NoError(t, err)
	f, lits := literals(t, string(data))
	assert.Equal(t, []string{"Property", "BookProperties", "ShelfProperties", "Entities"}, declared(f))
	assert.True(t, lits["org.example.library.Book"])
	assert.True(t, lits["org.example.library.Shelf"])
	assert.Equal(t, []string{
		filepath.Join(dir, "org", "example", "library", FileName),
		filepath.Join(dir, "org", "example", "library", FileName),
	}, w.Written())
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"org.example.shop": "shop",
		"":                 DefaultPackage,
		"org.example.Geo":  "geo",
		"org.example.type": "type_",
		"org.example.2d":   "_2d",
		"com.acme.my-app":  "myapp",
		"single":           "single",
	}
	for ns, want := range tests {
		assert.Equal(t, want, PackageName(ns), ns)
	}
}
