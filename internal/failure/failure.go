// Package failure defines the error kinds produced while extracting labels
// and the collector that aggregates per-identifier failures in batch mode.
package failure

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Kind classifies a failure.
type Kind string

const (
	// InputMalformed: the annotation document is missing or unparseable.
	InputMalformed Kind = "input-malformed"
	// Inconclusive: the expected line count was never reached.
	Inconclusive Kind = "reconstruction-inconclusive"
	// Collaborator: the crop tool or an output write failed.
	Collaborator Kind = "collaborator-failure"
	// DictionaryUnavailable: the word list could not be loaded.
	DictionaryUnavailable Kind = "dictionary-unavailable"
	// Traversal: an entry of the content tree could not be read.
	Traversal Kind = "traversal"
)

// Error is a classified failure, optionally tagged with the identifier it
// happened for.
type Error struct {
	Kind       Kind
	Identifier string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Identifier != "" {
		fmt.Fprintf(&b, "[%s] ", e.Identifier)
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an untagged failure of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Newf is New with a formatted message and no cause.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Tag attaches an identifier to err. An untagged *Error is copied and tagged
// in place of being wrapped, so the message carries the identifier once.
func Tag(identifier string, err error) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*Error); ok && fe.Identifier == "" {
		tagged := *fe
		tagged.Identifier = identifier
		return &tagged
	}
	return &Error{Kind: KindOf(err), Identifier: identifier, Cause: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Collaborator
// when err carries no classification.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind != "" {
		return fe.Kind
	}
	return Collaborator
}

// IdentifierOf returns the identifier of the first tagged *Error in err's chain.
func IdentifierOf(err error) string {
	for err != nil {
		var fe *Error
		if !errors.As(err, &fe) {
			return ""
		}
		if fe.Identifier != "" {
			return fe.Identifier
		}
		err = fe.Cause
	}
	return ""
}

// Many is the aggregate of every failure collected during a batch.
type Many struct {
	Errors []error
}

func (m *Many) Error() string {
	lines := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		lines[i] = err.Error()
	}
	return "some errors occurred:\n\t" + strings.Join(lines, "\n\t")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *Many) Unwrap() []error {
	return m.Errors
}

// Collector is an append-only, concurrency-safe list of failures.
type Collector struct {
	mu     sync.Mutex
	errors []error
}

// Add records err. Nil errors are ignored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errors = append(c.errors, err)
	c.mu.Unlock()
}

// Len returns the number of failures recorded so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}

// Err returns nil when nothing was collected, otherwise a *Many holding a
// snapshot of every failure.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errors) == 0 {
		return nil
	}
	snapshot := make([]error, len(c.errors))
	copy(snapshot, c.errors)
	return &Many{Errors: snapshot}
}
