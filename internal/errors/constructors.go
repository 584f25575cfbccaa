package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *FontBuilderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *FontBuilderError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *FontBuilderError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build errors

func OutputDirError(path string, cause error) *FontBuilderError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output directory preparation failed").
		WithContext("path", path)
}

func ToolUnavailable(cause error) *FontBuilderError {
	return Wrap(cause, CategoryTool, SeverityFatal, "font tool unavailable")
}

func JobsFailed(failed, total int, cause error) *FontBuilderError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "font build incomplete").
		WithContext("failed", failed).
		WithContext("total", total)
}

func BuildCanceled(cause error) *FontBuilderError {
	return Wrap(cause, CategoryCanceled, SeverityError, "font build canceled")
}

// Internal errors

func InternalError(message string, cause error) *FontBuilderError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
