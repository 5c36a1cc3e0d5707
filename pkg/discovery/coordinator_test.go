package discovery

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/element/mem"
	"github.com/Litote/kgenerator/pkg/model"
)

const (
	entity   element.AnnotationKind = "org.litote.kgenerator.Entity"
	registry element.AnnotationKind = "org.litote.kgenerator.EntityRegistry"
)

func marker(kind element.AnnotationKind, values map[string]any) mem.Option {
	return mem.WithAnnotations(element.NewAnnotation(kind, values))
}

func internals(s *model.ClassSet) map[string]bool {
	out := map[string]bool{}
	for c := range s.All() {
		out[c.Name()] = c.Internal()
	}
	return out
}

func TestCoordinator_Discover(t *testing.T) {
	u := mem.New()
	a := u.Class("org.example.A", marker(entity, map[string]any{"internal": true}))
	b := u.Class("org.example.B")
	u.Class("org.example.C", marker(entity, nil))
	u.Declare("org.example.Registry", marker(registry, map[string]any{
		"value":    []element.Type{a.Type(), b.Type()},
		"internal": false,
	}))
	u.Declare("org.example.OtherRegistry", marker(registry, map[string]any{
		"value":    []element.Type{b.Type()},
		"internal": true,
	}))

	buf := new(bytes.Buffer)
	report := diag.New(slog.New(slog.NewTextHandler(buf, nil)), false)
	got := New(model.NewEnv(u, nil), report).Discover(u, entity, registry)

	names := make([]string, 0, got.Len())
	for c := range got.All() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"A", "C", "B"}, names)
	assert.Equal(t, map[string]bool{"A": true, "C": false, "B": false}, internals(got),
		"direct wins over registry, first registry wins over later ones")
	assert.Contains(t, buf.String(), "Found Entity classes: [org.example.A, org.example.C, org.example.B]")
	assert.Zero(t, report.Warnings())
}

func TestCoordinator_RegistryProblems(t *testing.T) {
	u := mem.New()
	b := u.Class("org.example.B")
	u.Declare("org.example.Empty", marker(registry, nil))
	u.Declare("org.example.Mixed", marker(registry, map[string]any{
		"value": []element.Type{u.Plain("org.example.Missing"), b.Type(), u.Array(u.Plain("int"))},
	}))

	report := diag.Discard()
	got := New(model.NewEnv(u, nil), report).Discover(u, entity, registry)

	assert.Equal(t, 1, got.Len())
	assert.True(t, got.Contains(b))
	assert.Equal(t, 3, report.Warnings())
	assert.Zero(t, report.Errors())
}

func TestCoordinator_NothingFound(t *testing.T) {
	u := mem.New()
	u.Class("org.example.Plain")

	buf := new(bytes.Buffer)
	report := diag.New(slog.New(slog.NewTextHandler(buf, nil)), false)
	got := New(model.NewEnv(u, nil), report).Discover(u, entity, "")

	assert.False(t, got.IsNotEmpty())
	assert.Empty(t, buf.String())
}

func TestCoordinator_DebugTraces(t *testing.T) {
	u := mem.New()
	u.Class("org.example.A", marker(entity, nil))

	buf := new(bytes.Buffer)
	l := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: diag.LevelTrace}))
	New(model.NewEnv(u, nil), diag.New(l, true)).Discover(u, entity, registry)

	assert.Contains(t, buf.String(), "Entity classes: [org.example.A]")
	assert.Contains(t, buf.String(), "EntityRegistry classes: []")
}

func TestRegistryClasses(t *testing.T) {
	u := mem.New()
	a := u.Class("org.example.A")

	got, err := RegistryClasses(element.NewAnnotation(registry, map[string]any{"value": a.Type()}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name())

	_, err = RegistryClasses(element.NewAnnotation(registry, nil))
	assert.ErrorIs(t, err, ErrNoValue)

	assert.False(t, InternalOf(nil))
	assert.True(t, InternalOf(element.NewAnnotation(entity, map[string]any{"internal": true})))
}
