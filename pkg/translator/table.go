package translator

import "maps"

// Renames maps qualified source names to qualified target names.
type Renames map[string]string

// Lookup returns the target name of source.
func (r Renames) Lookup(source string) (string, bool) {
	n, ok := r[source]
	return n, ok
}

// Merge returns a new table with the entries of others layered over r.
func (r Renames) Merge(others ...Renames) Renames {
	out := make(Renames, len(r))
	maps.Copy(out, r)
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// JavaToKotlin maps JVM names to their read-only Kotlin counterparts.
var JavaToKotlin = Renames{
	// primitives
	"boolean": "kotlin.Boolean",
	"byte":    "kotlin.Byte",
	"short":   "kotlin.Short",
	"int":     "kotlin.Int",
	"long":    "kotlin.Long",
	"char":    "kotlin.Char",
	"float":   "kotlin.Float",
	"double":  "kotlin.Double",
	"void":    "kotlin.Unit",

	// boxed primitives
	"java.lang.Boolean":   "kotlin.Boolean",
	"java.lang.Byte":      "kotlin.Byte",
	"java.lang.Short":     "kotlin.Short",
	"java.lang.Integer":   "kotlin.Int",
	"java.lang.Long":      "kotlin.Long",
	"java.lang.Character": "kotlin.Char",
	"java.lang.Float":     "kotlin.Float",
	"java.lang.Double":    "kotlin.Double",
	"java.lang.Void":      "kotlin.Nothing",

	// java.lang
	"java.lang.Object":                "kotlin.Any",
	"java.lang.String":                "kotlin.String",
	"java.lang.CharSequence":          "kotlin.CharSequence",
	"java.lang.Throwable":             "kotlin.Throwable",
	"java.lang.Cloneable":             "kotlin.Cloneable",
	"java.lang.Number":                "kotlin.Number",
	"java.lang.Comparable":            "kotlin.Comparable",
	"java.lang.Enum":                  "kotlin.Enum",
	"java.lang.annotation.Annotation": "kotlin.Annotation",
	"java.lang.Deprecated":            "kotlin.Deprecated",

	// collections
	"java.lang.Iterable":     "kotlin.collections.Iterable",
	"java.util.Iterator":     "kotlin.collections.Iterator",
	"java.util.Collection":   "kotlin.collections.Collection",
	"java.util.List":         "kotlin.collections.List",
	"java.util.Set":          "kotlin.collections.Set",
	"java.util.ListIterator": "kotlin.collections.ListIterator",
	"java.util.Map":          "kotlin.collections.Map",
	"java.util.Map.Entry":    "kotlin.collections.Map.Entry",
}

// GoToKotlin maps the names produced by the Go source facade.
var GoToKotlin = Renames{
	"bool":          "kotlin.Boolean",
	"string":        "kotlin.String",
	"int":           "kotlin.Long",
	"int8":          "kotlin.Byte",
	"int16":         "kotlin.Short",
	"int32":         "kotlin.Int",
	"rune":          "kotlin.Int",
	"int64":         "kotlin.Long",
	"uint":          "kotlin.ULong",
	"byte":          "kotlin.Byte",
	"uint8":         "kotlin.Byte",
	"uint16":        "kotlin.UShort",
	"uint32":        "kotlin.UInt",
	"uint64":        "kotlin.ULong",
	"uintptr":       "kotlin.ULong",
	"float32":       "kotlin.Float",
	"float64":       "kotlin.Double",
	"any":           "kotlin.Any",
	"error":         "kotlin.Throwable",
	"slice":         "kotlin.collections.List",
	"map":           "kotlin.collections.Map",
	"void":          "kotlin.Unit",
	"time.Time":     "java.time.Instant",
	"time.Duration": "kotlin.time.Duration",
}
