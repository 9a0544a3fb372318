package config

// ResolveValue exports resolveValue for testing.
var ResolveValue = resolveValue //nolint:gochecknoglobals // test export

// Validate exports validate for testing.
var Validate = validate //nolint:gochecknoglobals // test export
