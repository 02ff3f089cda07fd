package logging

import "log/slog"

// Common field keys to keep log records consistent and searchable.
const (
	FieldService = "service"
	FieldVersion = "version"
)

// WithCommon appends the shared service/version attributes to attrs,
// skipping empty values.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
