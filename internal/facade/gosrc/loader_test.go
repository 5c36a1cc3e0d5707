package gosrc

import (
	"context"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Litote/kgenerator/pkg/discovery"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/model"
	"github.com/Litote/kgenerator/pkg/translator"
)

func loadShop(t *testing.T, cfg Config) *Universe {
	t.Helper()
	cfg.Dir = "testdata/shop"
	u, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	return u
}

func memberByName(el element.Element, name string) element.Element {
	for _, m := range el.Enclosed() {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func TestLoad_Declarations(t *testing.T) {
	u := loadShop(t, Config{})

	var names []string
	for _, c := range u.Classes() {
		names = append(names, element.QualifiedName(c))
	}
	assert.Equal(t, []string{
		"com.example.shop.Customer",
		"com.example.shop.Order",
		"com.example.shop.Line",
		"com.example.shop.billing.Invoice",
	}, names)

	customer, ok := u.Lookup("com.example.shop.Customer")
	require.True(t, ok)
	assert.Equal(t, element.KindClass, customer.Kind())
	assert.True(t, customer.Modifiers().Has(element.ModifierPublic))

	tests := []struct {
		field string
		want  string
		kind  element.Shape
	}{
		{field: "Name", want: "string", kind: element.ShapePlain},
		{field: "Email", want: "@Nullable string", kind: element.ShapePlain},
		{field: "Tags", want: "slice[string]", kind: element.ShapeParameterized},
		{field: "Avatar", want: "[]byte", kind: element.ShapeArray},
		{field: "Scores", want: "map[string, int]", kind: element.ShapeParameterized},
		{field: "CreatedAt", want: "time.Time", kind: element.ShapePlain},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := memberByName(customer, tt.field)
			require.NotNil(t, f)
			assert.Equal(t, element.KindField, f.Kind())
			assert.Equal(t, tt.want, f.Type().String())
			assert.Equal(t, tt.kind, f.Type().Shape())
		})
	}

	secret := memberByName(customer, "secret")
	require.NotNil(t, secret)
	assert.True(t, secret.Modifiers().Has(element.ModifierPrivate))
	assert.True(t, memberByName(customer, "Cache").Modifiers().Has(element.ModifierTransient))
	assert.True(t, memberByName(customer, "Session").Modifiers().Has(element.ModifierTransient))
	assert.False(t, memberByName(customer, "Name").Modifiers().Has(element.ModifierTransient))

	getter := memberByName(customer, "Secret")
	require.NotNil(t, getter)
	assert.Equal(t, element.KindMethod, getter.Kind())
	assert.Equal(t, "string", getter.Type().String())

	ctor := memberByName(customer, "NewCustomer")
	require.NotNil(t, ctor)
	assert.Equal(t, element.KindConstructor, ctor.Kind())
	require.Len(t, ctor.Params(), 2)
	assert.Equal(t, "name", ctor.Params()[0].Name())
	assert.Equal(t, "email", ctor.Params()[1].Name())
	assert.Equal(t, "com.example.shop.Customer.NewCustomer", ctor.(*Element).String())
}

func TestLoad_Directives(t *testing.T) {
	u := loadShop(t, Config{})

	entities := u.ElementsAnnotatedWith("kgen.Entity")
	require.Len(t, entities, 1)
	assert.Equal(t, "Customer", entities[0].Name())

	registries := u.ElementsAnnotatedWith("kgen.EntityRegistry")
	require.Len(t, registries, 1)
	reg := registries[0]
	assert.Equal(t, element.KindPackage, reg.Kind())
	assert.Equal(t, "com.example.shop", reg.Name())

	a, ok := element.FindAnnotation(reg.Annotations(), "kgen.EntityRegistry")
	require.True(t, ok)
	internal, ok := a.Bool("internal")
	require.True(t, ok)
	assert.True(t, internal)

	types, ok := a.Types(TypesAttr)
	require.True(t, ok)
	require.Len(t, types, 3)
	assert.Equal(t, "com.example.shop.Order", types[0].Name())
	assert.NotNil(t, types[0].Element())
	assert.Equal(t, "com.example.shop.billing.Invoice", types[1].Name())
	assert.NotNil(t, types[1].Element())
	assert.Equal(t, "Unknown", types[2].Name())
	assert.Nil(t, types[2].Element())

	order, ok := u.Lookup("com.example.shop.Order")
	require.True(t, ok)
	customer := memberByName(order, "Customer")
	_, ok = element.FindAnnotation(customer.Annotations(), element.KgenNullable)
	assert.True(t, ok, "trailing directive")
}

func TestLoad_Types(t *testing.T) {
	u := loadShop(t, Config{})
	customer, _ := u.Lookup("com.example.shop.Customer")
	order, _ := u.Lookup("com.example.shop.Order")

	tags := memberByName(customer, "Tags").Type()
	scores := memberByName(customer, "Scores").Type()
	name := memberByName(customer, "Name").Type()
	assert.True(t, u.IsAssignable(tags, element.CollectionAnchor))
	assert.False(t, u.IsAssignable(tags, element.MapAnchor))
	assert.True(t, u.IsAssignable(scores, element.MapAnchor))
	assert.False(t, u.IsAssignable(name, element.CollectionAnchor))
	assert.True(t, u.IsAssignable(name, "string"))

	erased := u.Erasure(tags)
	assert.Equal(t, element.ShapePlain, erased.Shape())
	assert.Equal(t, SliceName, erased.Name())
	assert.Empty(t, erased.Args())

	lines := memberByName(order, "Lines").Type()
	require.Len(t, lines.Args(), 1)
	line := lines.Args()[0].Element()
	require.NotNil(t, line)
	assert.Equal(t, "Line", line.Name())

	invoice := memberByName(order, "Invoice").Type()
	assert.Equal(t, "@Nullable com.example.shop.billing.Invoice", invoice.String())
	require.NotNil(t, invoice.Element())
	assert.Equal(t, "com.example.shop.billing", invoice.Element().Namespace())
}

func TestLoad_NamespacePrefix(t *testing.T) {
	u := loadShop(t, Config{NamespacePrefix: "org.acme"})
	_, ok := u.Lookup("org.acme.Customer")
	assert.True(t, ok)
	_, ok = u.Lookup("org.acme.billing.Invoice")
	assert.True(t, ok)
}

func TestLoad_TagFilters(t *testing.T) {
	u := loadShop(t, Config{TagFilters: []TagFilter{{Key: "db", Value: "-"}}})
	customer, _ := u.Lookup("com.example.shop.Customer")
	assert.False(t, memberByName(customer, "Cache").Modifiers().Has(element.ModifierTransient))
	assert.True(t, memberByName(customer, "Session").Modifiers().Has(element.ModifierTransient))
}

func TestLoad_NoModule(t *testing.T) {
	_, err := Load(context.Background(), Config{Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no go.mod")
}

func TestLoad_Model(t *testing.T) {
	u := loadShop(t, Config{})
	tr := translator.New(translator.WithTable(translator.GoToKotlin))
	env := model.NewEnv(u, tr, model.WithAccessorPrefix(""))

	classes := discovery.New(env, nil).Discover(u, "kgen.Entity", "kgen.EntityRegistry")
	assert.Equal(t, "[com.example.shop.Customer, com.example.shop.Order, com.example.shop.billing.Invoice]", classes.String())

	customer, _ := u.Lookup("com.example.shop.Customer")
	c, ok := classes.Get(customer)
	require.True(t, ok)
	assert.False(t, c.Internal())

	types := map[string]string{}
	for _, p := range c.Properties(nil) {
		tn, err := p.Type()
		require.NoError(t, err)
		types[p.Name()] = tn.String()
	}
	assert.Equal(t, map[string]string{
		"Name":      "kotlin.String",
		"Email":     "kotlin.String?",
		"Tags":      "kotlin.collections.List<kotlin.String>",
		"Avatar":    "kotlin.ByteArray",
		"Scores":    "kotlin.collections.Map<kotlin.String, kotlin.Long>",
		"CreatedAt": "java.time.Instant",
		"secret":    "kotlin.String",
	}, types)

	secret, ok := c.Property("secret")
	require.True(t, ok)
	_, ok = secret.Getter()
	assert.True(t, ok)
	assert.Equal(t, model.AccessDirect, secret.Access())
	email, _ := c.Property("Email")
	_, ok = email.Parameter()
	assert.False(t, ok, "parameters match field names exactly")

	order, _ := u.Lookup("com.example.shop.Order")
	o, ok := classes.Get(order)
	require.True(t, ok)
	assert.True(t, o.Internal())
}

const shelfSource = `package shop

// Shelf holds lines.
//
//kgen:Entity internal=true
type Shelf struct {
	Lines []Line
}
`

// gofmt rewrites top-level //kgen: lines of doc comments into "// kgen:" text.
func TestLoad_FormattedSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS("testdata/shop")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelf.go"), []byte(shelfSource), 0o644))
	require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, err := format.Source(src)
		if err != nil {
			return err
		}
		return os.WriteFile(path, out, 0o644)
	}))

	u, err := Load(context.Background(), Config{Dir: dir})
	require.NoError(t, err)
	env := model.NewEnv(u, translator.New(translator.WithTable(translator.GoToKotlin)), model.WithAccessorPrefix(""))
	classes := discovery.New(env, nil).Discover(u, "kgen.Entity", "kgen.EntityRegistry")

	for name, internal := range map[string]bool{
		"com.example.shop.Customer":        false,
		"com.example.shop.Shelf":           true,
		"com.example.shop.Order":           true,
		"com.example.shop.billing.Invoice": true,
	} {
		el, ok := u.Lookup(name)
		require.True(t, ok, name)
		c, ok := classes.Get(el)
		require.True(t, ok, name)
		assert.Equal(t, internal, c.Internal(), name)
	}
	assert.Equal(t, 4, classes.Len())
}
