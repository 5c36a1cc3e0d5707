package kotlin

import (
	"fmt"

	"github.com/Litote/kgenerator/pkg/typename"
)

// KReflectPackage holds the runtime helpers that read private properties.
const KReflectPackage = "org.litote.kreflect"

// FindProperty returns the code looking up property of source, typed target.
func FindProperty(source, target *typename.TypeName, property string) string {
	return fmt.Sprintf("%s.findProperty<%s,%s>(%q)", KReflectPackage, source, target, property)
}

// FindPropertyValue returns the code reading property of the owner expression.
func FindPropertyValue(source, target *typename.TypeName, owner, property string) string {
	return fmt.Sprintf("%s.findPropertyValue<%s,%s>(%s, %q)", KReflectPackage, source, target, owner, property)
}

// SetPropertyValue returns the code assigning the value expression to property of owner.
func SetPropertyValue(source, target *typename.TypeName, owner, property, value string) string {
	return fmt.Sprintf("%s.setPropertyValue<%s,%s>(%s, %q, %s)", KReflectPackage, source, target, owner, property, value)
}
