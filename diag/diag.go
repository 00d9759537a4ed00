// Package diag defines the error taxonomy shared by the xdlayout pipeline.
//
// Problems are split into two kinds: fatal errors, which abort the whole
// artboard because the resulting geometry would be undefined, and warnings,
// which are logged and collected but never change control flow. Both carry
// the identity of the design object they were raised for.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
)

// Reason classifies a diagnostic.
type Reason string

// Diagnostic reasons.
const (
	ReasonUnresolvedReference Reason = "unresolved reference"
	ReasonReferenceCycle      Reason = "reference cycle"
	ReasonUnknownObject       Reason = "unknown object type"
	ReasonUnknownShape        Reason = "unknown shape type"
	ReasonUnknownFill         Reason = "unknown fill type"
	ReasonUnknownStroke       Reason = "unknown stroke type"
	ReasonUnknownStrokeAlign  Reason = "unknown stroke align"
	ReasonUnknownGradient     Reason = "unknown gradient"
	ReasonUnsupported         Reason = "unsupported feature"
	ReasonMissingResource     Reason = "missing resource"
	ReasonInvalidGeometry     Reason = "invalid geometry"
	ReasonFailed              Reason = "processing failed"
)

// Node identifies a design object in diagnostics.
type Node struct {
	Name string
	ID   string
	GUID string
}

func (n Node) String() string {
	if n.GUID != "" && n.GUID != n.ID {
		return fmt.Sprintf("%q (id=%s guid=%s)", n.Name, n.ID, n.GUID)
	}
	return fmt.Sprintf("%q (id=%s)", n.Name, n.ID)
}

// Error is a fatal problem bound to one design object.
type Error struct {
	Node   Node
	Reason Reason
	Err    error

	logged bool
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("xdlayout: %s at %s", e.Reason, e.Node)
	}
	return fmt.Sprintf("xdlayout: %s at %s: %v", e.Reason, e.Node, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal returns an *Error for node.
func Fatal(node Node, reason Reason, format string, args ...any) error {
	return &Error{
		Node:   node,
		Reason: reason,
		Err:    errors.Errorf(format, args...),
	}
}

// Annotate binds err to node unless an inner frame already did so. The first
// annotation is logged at error level; outer frames return err unchanged, so
// the final error names the original failing node.
func Annotate(logger *slog.Logger, node Node, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if !errors.As(err, &de) {
		de = &Error{Node: node, Reason: ReasonFailed, Err: err}
		err = de
	}
	if !de.logged {
		de.logged = true
		if logger != nil {
			logger.Error("failed to process object",
				"name", de.Node.Name, "id", de.Node.ID, "guid", de.Node.GUID,
				"reason", string(de.Reason), "err", de.Err)
		}
	}
	return err
}

// IsReason reports whether err carries a diag.Error with the given reason.
func IsReason(err error, reason Reason) bool {
	var de *Error
	return errors.As(err, &de) && de.Reason == reason
}

// Warning is a recoverable, purely cosmetic problem.
type Warning struct {
	Node    Node
	Reason  Reason
	Message string
}

func (w Warning) Error() string {
	return fmt.Sprintf("xdlayout: warning: %s at %s: %s", w.Reason, w.Node, w.Message)
}

// Collector gathers warnings for one artboard. It is safe for concurrent use.
type Collector struct {
	logger *slog.Logger

	mu       sync.Mutex
	warnings []Warning
}

// NewCollector returns a Collector that also reports to logger.
// A nil logger only collects.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

// Warn records a warning.
func (c *Collector) Warn(node Node, reason Reason, format string, args ...any) {
	w := Warning{Node: node, Reason: reason, Message: fmt.Sprintf(format, args...)}
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
	if c.logger != nil {
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, w.Message,
			slog.String("reason", string(reason)),
			slog.String("name", node.Name),
			slog.String("id", node.ID))
	}
}

// Warnings returns a copy of the recorded warnings in order.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Err joins all warnings into one error, or returns nil when there are none.
// Used by strict imports that treat warnings as failures.
func (c *Collector) Err() error {
	var result *multierror.Error
	for _, w := range c.Warnings() {
		result = multierror.Append(result, w)
	}
	return result.ErrorOrNil()
}
