package project

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigCorrupt is matched by every error reporting an unusable project
// configuration file.
var ErrConfigCorrupt = errors.New("project configuration is corrupt")

// CorruptError describes why a project configuration file could not be used.
// Either Err (a parse failure) or Issues (schema violations) is set.
type CorruptError struct {
	Path   string
	Err    error
	Issues []ValidationIssue
}

func (e *CorruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrConfigCorrupt }
