package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "buildsync.dev/pkg/buildsync/internal/model"
)

func TestNewRegistry_KnownKinds(t *testing.T) {
	registry := NewRegistry()

	kinds := registry.Kinds()
	require.Len(t, kinds, 3)
	assert.Equal(t, []m.AnnotationKind{m.KindCopyWith, m.KindJSONSerializable, m.KindHive}, kinds)
}

func TestRegistry_RuleFor(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		kind       m.AnnotationKind
		builderKey string
		matching   string
	}{
		{m.KindCopyWith, "copy_with_extension_gen", "@CopyWith()"},
		{m.KindJSONSerializable, "json_serializable", "@JsonSerializable(explicitToJson: true)"},
		{m.KindHive, "hive_generator", "@HiveType(typeId: 0)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			rule, ok := registry.RuleFor(tt.kind)
			require.True(t, ok)

			assert.Equal(t, tt.kind, rule.Kind)
			assert.Equal(t, tt.builderKey, rule.BuilderKey)
			assert.True(t, rule.Pattern.MatchString(tt.matching))
		})
	}
}

func TestRegistry_RuleFor_Unknown(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.RuleFor(m.AnnotationKind("freezed"))
	assert.False(t, ok)
}

func TestRegistry_PatternsTolerateWhitespace(t *testing.T) {
	registry := NewRegistry()

	rule, ok := registry.RuleFor(m.KindHive)
	require.True(t, ok)

	assert.True(t, rule.Pattern.MatchString("@HiveType  (typeId: 1)"))
	assert.True(t, rule.Pattern.MatchString("class User {\n  @HiveType\t(typeId: 1)\n}"))
	assert.False(t, rule.Pattern.MatchString("HiveType(typeId: 1)"))
	assert.False(t, rule.Pattern.MatchString("@HiveType"))
}
