package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/element/mem"
	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/generator"
	"github.com/Litote/kgenerator/pkg/model"
	"github.com/Litote/kgenerator/pkg/translator"
)

func round(t *testing.T, n int, w *emit.Writer, report *diag.Reporter, classes ...*model.Class) *generator.Round {
	t.Helper()
	return &generator.Round{
		Number:  n,
		Classes: model.NewClassSet(classes...),
		Writer:  w,
		Report:  report,
		Options: generator.NewOptions(),
	}
}

func TestGenerator_Generate(t *testing.T) {
	u := mem.New()
	env := model.NewEnv(u, translator.New())
	str := u.Plain("java.lang.String")
	u.Class("org.example.geo.Address")
	person := u.Class("org.example.Person", mem.WithMembers(
		mem.Field("name", str, mem.WithModifiers(element.ModifierPrivate)),
		mem.Method("getName", str, mem.WithModifiers(element.ModifierPrivate)),
		mem.Field("homes", u.Parameterized("java.util.List", u.Plain("org.example.geo.Address"))),
		mem.Field("byCity", u.Parameterized("java.util.Map", str, u.Plain("org.example.geo.Address"))),
	))
	invoice := u.Class("org.example.billing.Invoice")

	classDir := t.TempDir()
	report := diag.Discard()
	w := emit.New(t.TempDir(), classDir, report)
	g := New()
	require.NoError(t, g.Generate(context.Background(), round(t, 1, w, report, model.NewClass(env, person, false))))
	require.NoError(t, g.Generate(context.Background(), round(t, 2, w, report, model.NewClass(env, invoice, true))))
	require.Zero(t, report.Errors())

	got, err := Load(filepath.Join(classDir, FileName))
	require.NoError(t, err)
	want := &Report{
		Rounds: 2,
		Classes: []Class{
			{
				Name:  "org.example.Person",
				Round: 1,
				Properties: []Property{
					{Name: "name", Type: "kotlin.String", Access: "private"},
					{Name: "homes", Type: "kotlin.collections.List<org.example.geo.Address>", Access: "direct", Kind: "collection", Namespace: "org.example.geo"},
					{Name: "byCity", Type: "kotlin.collections.Map<kotlin.String, org.example.geo.Address>", Access: "direct", Kind: "map", Namespace: "org.example.geo"},
				},
			},
			{Name: "org.example.billing.Invoice", Round: 2, Internal: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"org.example.Person", "org.example.billing.Invoice"}, got.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, g.Report()); diff != "" {
		t.Errorf("Report() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
}
