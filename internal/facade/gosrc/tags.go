package gosrc

import (
	"reflect"
	"strings"
)

// TagFilter marks a field transient when its tag Key contains Value.
type TagFilter struct {
	Key   string
	Value string
}

// transientTag reports whether tag excludes its field. Without filters any `-` tag value
// does; with filters only a matching key and part does.
func transientTag(tag reflect.StructTag, filters []TagFilter) bool {
	tagMap := structTagToMap(tag)
	if len(tagMap) == 0 {
		return false
	}

	if len(filters) == 0 {
		for _, v := range tagMap {
			if containsTagPart(v, "-") {
				return true
			}
		}
		return false
	}

	for _, f := range filters {
		v, ok := tagMap[f.Key]
		if !ok {
			continue
		}
		if containsTagPart(v, f.Value) {
			return true
		}
	}
	return false
}

// structTagToMap converts a struct tag into a key/value map.
func structTagToMap(tag reflect.StructTag) map[string]string {
	m := map[string]string{}
	raw := strings.TrimSpace(string(tag))
	for raw != "" {
		key, rest, ok := strings.Cut(raw, ":\"")
		if !ok {
			break
		}
		end := strings.Index(rest, "\"")
		if end < 0 {
			break
		}
		m[key] = rest[:end]
		raw = strings.TrimSpace(rest[end+1:])
	}
	return m
}

// containsTagPart splits a tag value on ; and , and reports whether a part is expected.
func containsTagPart(tagVal, expected string) bool {
	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if part == expected {
			return true
		}
	}
	return false
}
