// Package domain contains the annotation scanning and build.yaml rewriting
// logic of buildsync.
package domain

import (
	"regexp"

	m "buildsync.dev/pkg/buildsync/internal/model"
)

// Registry is the fixed lookup table from annotation kind to detection rule.
// It is built once at startup and never mutated afterwards.
type Registry struct {
	rules map[m.AnnotationKind]m.DetectionRule
	order []m.AnnotationKind
}

// NewRegistry constructs the registry with the three supported annotation
// families. Each pattern tolerates whitespace between the marker and the
// opening parenthesis and matches anywhere in file content.
func NewRegistry() *Registry {
	rules := map[m.AnnotationKind]m.DetectionRule{
		m.KindCopyWith: {
			Kind:       m.KindCopyWith,
			Pattern:    regexp.MustCompile(`@CopyWith\s*\(`),
			BuilderKey: "copy_with_extension_gen",
		},
		m.KindJSONSerializable: {
			Kind:       m.KindJSONSerializable,
			Pattern:    regexp.MustCompile(`@JsonSerializable\s*\(`),
			BuilderKey: "json_serializable",
		},
		m.KindHive: {
			Kind:       m.KindHive,
			Pattern:    regexp.MustCompile(`@HiveType\s*\(`),
			BuilderKey: "hive_generator",
		},
	}

	return &Registry{
		rules: rules,
		order: []m.AnnotationKind{m.KindCopyWith, m.KindJSONSerializable, m.KindHive},
	}
}

// Kinds returns every registered annotation kind in a fixed iteration order.
func (r *Registry) Kinds() []m.AnnotationKind {
	kinds := make([]m.AnnotationKind, len(r.order))
	copy(kinds, r.order)

	return kinds
}

// RuleFor returns the detection rule registered for kind.
func (r *Registry) RuleFor(kind m.AnnotationKind) (m.DetectionRule, bool) {
	rule, ok := r.rules[kind]

	return rule, ok
}
