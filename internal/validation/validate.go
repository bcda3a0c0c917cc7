// Package validation implements the pure input validators for the
// checklist engine: session-id, task-id, path, work-id, and text-length
// checks. Every validator checks exactly one field and never panics — a
// failing check returns a structured Error (kind + message) that handlers
// surface verbatim, prefixed "Error: ".
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the class of validation or lookup failure. Kinds are not
// Go error types in their own right — they're a closed, spec-defined
// taxonomy a handler maps onto a single user-visible text part.
type Kind string

const (
	InvalidSessionID Kind = "InvalidSessionId"
	InvalidTaskID    Kind = "InvalidTaskId"
	InvalidPath      Kind = "InvalidPath"
	InvalidWorkID    Kind = "InvalidWorkId"
	InvalidText      Kind = "InvalidText"
	DuplicateTaskID  Kind = "DuplicateTaskId"
	SessionNotFound  Kind = "SessionNotFound"
	TaskNotFound     Kind = "TaskNotFound"
	WorkNotFound     Kind = "WorkNotFound"
	IDExhaustion     Kind = "IdExhaustion"
)

// Error is a structured validation or lookup failure. It implements the
// error interface so it composes with fmt.Errorf("%w", ...) and errors.As,
// but callers in this codebase mostly just read Kind and Message directly.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

const (
	maxSessionIDLen   = 100
	maxTaskIDLen      = 20
	maxPathLen        = 500
	maxDescriptionLen = 1000
	maxWorkDescLen    = 200
	maxSummarizeLen   = 5000
)

var (
	sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	taskIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_\-@#$%&+=!.]+$`)
	workIDPattern    = regexp.MustCompile(`^[1-9][0-9]{7}$`)
)

// SessionID checks sessionId: 1-100 chars from [A-Za-z0-9_-].
func SessionID(raw string) (string, *Error) {
	if raw == "" || len(raw) > maxSessionIDLen || !sessionIDPattern.MatchString(raw) {
		return "", newError(InvalidSessionID, "sessionId must be 1-100 characters from [A-Za-z0-9_-], got %q", raw)
	}
	return raw, nil
}

// TaskID checks taskId: 1-20 chars from [A-Za-z0-9-_@#$%&+=!.].
func TaskID(raw string) (string, *Error) {
	if raw == "" || len(raw) > maxTaskIDLen || !taskIDPattern.MatchString(raw) {
		return "", newError(InvalidTaskID, "taskId must be 1-20 characters from [A-Za-z0-9-_@#$%%&+=!.], got %q", raw)
	}
	return raw, nil
}

// WorkID checks workId against ^[1-9][0-9]{7}$.
func WorkID(raw string) (string, *Error) {
	if !workIDPattern.MatchString(raw) {
		return "", newError(InvalidWorkID, "workId must be exactly 8 digits with a nonzero first digit, got %q", raw)
	}
	return raw, nil
}

// Text checks a free-text field against fieldName/maxLen, rejecting empty
// or whitespace-only strings.
func Text(fieldName, raw string, maxLen int) (string, *Error) {
	if strings.TrimSpace(raw) == "" {
		return "", newError(InvalidText, "%s must not be empty", fieldName)
	}
	if len(raw) > maxLen {
		return "", newError(InvalidText, "%s must be at most %d characters, got %d", fieldName, maxLen, len(raw))
	}
	return raw, nil
}

// Description validates a Task description (non-empty, <=1000 chars).
func Description(raw string) (string, *Error) {
	return Text("description", raw, maxDescriptionLen)
}

// WorkDescription validates work_description (non-empty, <=200 chars).
func WorkDescription(raw string) (string, *Error) {
	return Text("work_description", raw, maxWorkDescLen)
}

// WorkSummarize validates work_summarize (non-empty, <=5000 chars).
func WorkSummarize(raw string) (string, *Error) {
	return Text("work_summarize", raw, maxSummarizeLen)
}

// IDExhaustionError wraps the work-ID generator's retry-budget failure as
// the spec's IdExhaustion error kind.
func IDExhaustionError(cause error) *Error {
	return newError(IDExhaustion, "could not allocate a work id: %v", cause)
}

// Path validates a path string and returns its normalized form (leading
// "/" added, trailing "/" tolerated) plus its taskId segments. An empty
// path normalizes to "/", the forest root.
func Path(raw string) (normalized string, segments []string, verr *Error) {
	if raw == "" {
		raw = "/"
	}
	if len(raw) > maxPathLen {
		return "", nil, newError(InvalidPath, "path must be at most %d characters", maxPathLen)
	}
	if strings.Contains(raw, "//") {
		return "", nil, newError(InvalidPath, "path must not contain consecutive slashes: %q", raw)
	}

	trimmed := strings.Trim(raw, "/")
	var segs []string
	if trimmed != "" {
		segs = strings.Split(trimmed, "/")
		for _, s := range segs {
			if _, terr := TaskID(s); terr != nil {
				return "", nil, newError(InvalidPath, "path segment %q is not a valid taskId", s)
			}
		}
	}

	norm := "/" + strings.Join(segs, "/")
	return norm, segs, nil
}
