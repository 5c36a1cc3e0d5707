package translator

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/element/mem"
	"github.com/Litote/kgenerator/pkg/typename"
)

func nullable() element.Annotation {
	return element.NewAnnotation(element.Nullable, nil)
}

func TestTranslator_Translate(t *testing.T) {
	u := mem.New()
	u.Class("org.example.Address", mem.WithAnnotations(nullable()))
	u.Class("org.example.Person")

	str := u.Plain("java.lang.String")
	tests := []struct {
		name string
		in   element.Type
		want *typename.TypeName
	}{
		{
			name: "list of strings",
			in:   u.Parameterized("java.util.List", str),
			want: typename.Parameterized("kotlin.collections.List", typename.Class(typename.String)),
		},
		{
			name: "primitive byte array",
			in:   u.Array(u.Plain("byte")),
			want: typename.Class(typename.ByteArray),
		},
		{
			name: "boxed byte array",
			in:   u.Array(u.Plain("java.lang.Byte")),
			want: typename.Class(typename.ByteArray),
		},
		{
			name: "nullable byte array elements stay generic",
			in:   u.Array(u.Plain("java.lang.Byte").Annotated(nullable())),
			want: typename.Parameterized(typename.Array, typename.Class(typename.Byte).WithNullable(true)),
		},
		{
			name: "array of strings",
			in:   u.Array(str),
			want: typename.Parameterized(typename.Array, typename.Class(typename.String)),
		},
		{
			name: "producer wildcard",
			in:   u.Producer(u.Plain("java.lang.Number")),
			want: typename.ProducerOf(typename.Class("kotlin.Number")),
		},
		{
			name: "consumer wildcard",
			in:   u.Consumer(u.Plain("java.lang.Integer")),
			want: typename.ConsumerOf(typename.Class("kotlin.Int")),
		},
		{
			name: "nullable occurrence",
			in:   str.Annotated(nullable()),
			want: typename.Class(typename.String).WithNullable(true),
		},
		{
			name: "nullable declaration",
			in:   u.Plain("org.example.Address"),
			want: typename.Class("org.example.Address").WithNullable(true),
		},
		{
			name: "unmapped name passes through",
			in:   u.Plain("org.example.Person"),
			want: typename.Class("org.example.Person"),
		},
		{
			name: "nested map keeps order",
			in: u.Parameterized("java.util.Map",
				str,
				u.Parameterized("java.util.List", u.Producer(u.Plain("org.example.Person"))),
			).Annotated(nullable()),
			want: typename.Parameterized("kotlin.collections.Map",
				typename.Class(typename.String),
				typename.Parameterized("kotlin.collections.List", typename.ProducerOf(typename.Class("org.example.Person"))),
			).WithNullable(true),
		},
	}
	tr := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Translate(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Translate(%s) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestTranslator_ArgumentsFollowInput(t *testing.T) {
	u := mem.New()
	args := []element.Type{u.Plain("int"), u.Plain("org.example.A"), u.Plain("long"), u.Plain("char")}
	got, err := New().Translate(u.Parameterized("org.example.Tuple", args...))
	require.NoError(t, err)

	require.Len(t, got.Args, len(args))
	names := make([]string, 0, len(got.Args))
	for _, a := range got.Args {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"kotlin.Int", "org.example.A", "kotlin.Long", "kotlin.Char"}, names)
}

func TestTranslator_Deterministic(t *testing.T) {
	u := mem.New()
	in := u.Parameterized("java.util.Map", u.Plain("java.lang.String"), u.Array(u.Plain("byte")))
	tr := New()

	first, err := tr.Translate(in)
	require.NoError(t, err)
	second, err := tr.Translate(in)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, "kotlin.collections.Map<kotlin.String, kotlin.ByteArray>", second.String())
}

func TestTranslator_Errors(t *testing.T) {
	u := mem.New()
	tr := New()

	_, err := tr.Translate(u.Producer(nil))
	assert.ErrorIs(t, err, ErrMissingBound)

	_, err = tr.Translate(u.Parameterized("java.util.List", u.Consumer(nil)))
	assert.ErrorIs(t, err, ErrMissingBound)

	_, err = tr.Translate(nil)
	assert.ErrorIs(t, err, ErrNilType)

	_, err = tr.Translate(badShape{})
	assert.True(t, errors.Is(err, ErrUnknownShape))
}

type badShape struct{ element.Type }

func (badShape) Shape() element.Shape { return element.ShapeInvalid }
func (badShape) String() string       { return "bad" }

func TestTranslator_Options(t *testing.T) {
	u := mem.New()
	custom := element.AnnotationKind("javax.annotation.CheckForNull")

	tr := New(
		WithRenames(Renames{"org.example.Money": "java.math.BigDecimal"}),
		WithNullableAnnotations(custom),
		WithNullableProducerBounds(),
	)

	got, err := tr.Translate(u.Plain("org.example.Money"))
	require.NoError(t, err)
	assert.Equal(t, "java.math.BigDecimal", got.String())

	got, err = tr.Translate(u.Plain("java.lang.String").Annotated(nullable()))
	require.NoError(t, err)
	assert.False(t, got.Nullable, "default markers are replaced")

	got, err = tr.Translate(u.Plain("java.lang.String").Annotated(element.NewAnnotation(custom, nil)))
	require.NoError(t, err)
	assert.True(t, got.Nullable)

	got, err = tr.Translate(u.Producer(u.Plain("java.lang.Object")))
	require.NoError(t, err)
	assert.Equal(t, "*", got.String())
}

func TestTranslator_GoTable(t *testing.T) {
	u := mem.New()
	tr := New(WithTable(GoToKotlin))

	got, err := tr.Translate(u.Array(u.Plain("byte")))
	require.NoError(t, err)
	assert.Equal(t, typename.ByteArray, got.Name)

	got, err = tr.Translate(u.Parameterized("map", u.Plain("string"), u.Plain("int64").Annotated(element.NewAnnotation(element.KgenNullable, nil))))
	require.NoError(t, err)
	assert.Equal(t, "kotlin.collections.Map<kotlin.String, kotlin.Long?>", got.String())

	assert.Equal(t, "java.lang.String", tr.Rename("java.lang.String"))
}

func TestTranslator_Untranslated(t *testing.T) {
	u := mem.New()
	got, err := New().Untranslated(u.Parameterized("java.util.List", u.Plain("java.lang.String").Annotated(nullable())))
	require.NoError(t, err)
	assert.Equal(t, "java.util.List<java.lang.String?>", got.String())

	_, err = New().Untranslated(u.Producer(nil))
	assert.ErrorIs(t, err, ErrMissingBound)
}

func TestTranslator_DebugTraces(t *testing.T) {
	buf := new(bytes.Buffer)
	l := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: diag.LevelTrace}))
	u := mem.New()

	_, err := New(WithReporter(diag.New(l, true))).Translate(u.Producer(u.Plain("java.lang.Number")))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "out: ? extends java.lang.Number")
	assert.Contains(t, buf.String(), "out kotlin.Number")
}
