package dataset

import (
	"fmt"
	"strings"
)

// ConfigError reports an input file that does not have the shape the
// dashboard was configured for. It is fatal at startup.
type ConfigError struct {
	Path   string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Path, e.Detail)
}

func missingColumnError(path string, missing []string, available []string) *ConfigError {
	return &ConfigError{
		Path: path,
		Detail: fmt.Sprintf("missing column %s (available: %s)",
			quoteAll(missing), strings.Join(available, ", ")),
	}
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
