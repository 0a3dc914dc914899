package model

import "regexp"

// Path represents a file system path.
type Path string

// AnnotationKind identifies a family of Dart code-generation annotations.
type AnnotationKind string

const (
	// KindCopyWith marks classes annotated with @CopyWith(...).
	KindCopyWith AnnotationKind = "copy_with"

	// KindJSONSerializable marks classes annotated with @JsonSerializable(...).
	KindJSONSerializable AnnotationKind = "json_serializable"

	// KindHive marks classes annotated with @HiveType(...).
	KindHive AnnotationKind = "hive"
)

// DetectionRule ties an annotation kind to the content pattern that detects it
// and the build.yaml builder section its matches feed.
type DetectionRule struct {
	Kind       AnnotationKind
	Pattern    *regexp.Regexp
	BuilderKey string
}

// ScanResult is the lexicographically sorted list of quoted file paths whose
// content matched one detection rule.
type ScanResult []string
