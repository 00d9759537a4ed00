package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gitlab.com/tozd/go/errors"
)

func TestAnnotateOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := Node{Name: "leaf", ID: "a1"}
	outer := Node{Name: "group", ID: "g1"}

	var err error = errors.New("boom")
	err = Annotate(logger, inner, err)
	err = Annotate(logger, outer, err)

	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("Annotate() = %T, want *Error", err)
	}
	if de.Node != inner {
		t.Errorf("Node = %v, want %v", de.Node, inner)
	}
	if n := strings.Count(buf.String(), "failed to process object"); n != 1 {
		t.Errorf("logged %d times, want 1", n)
	}
	if strings.Contains(err.Error(), "group") {
		t.Errorf("error %q mentions intermediate group", err)
	}
}

func TestAnnotateKeepsFatalNode(t *testing.T) {
	leaf := Node{Name: "shape", ID: "s1"}
	err := Fatal(leaf, ReasonUnknownShape, "shape type %q", "blob")
	err = Annotate(nil, Node{Name: "parent", ID: "p1"}, err)

	if !IsReason(err, ReasonUnknownShape) {
		t.Errorf("IsReason(%v, unknown shape) = false, want true", err)
	}
	if !strings.Contains(err.Error(), `"shape"`) {
		t.Errorf("Error() = %q, want node name", err.Error())
	}
}

func TestAnnotateNil(t *testing.T) {
	if err := Annotate(nil, Node{}, nil); err != nil {
		t.Errorf("Annotate(nil) = %v, want nil", err)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(nil)
	if err := c.Err(); err != nil {
		t.Fatalf("Err() on empty collector = %v, want nil", err)
	}

	c.Warn(Node{Name: "poly", ID: "1"}, ReasonUnsupported, "corner radius on %s", "polygon")
	c.Warn(Node{Name: "grad", ID: "2"}, ReasonUnknownGradient, "type %q", "angular")

	ws := c.Warnings()
	if len(ws) != 2 {
		t.Fatalf("len(Warnings()) = %d, want 2", len(ws))
	}
	if ws[0].Message != "corner radius on polygon" {
		t.Errorf("Message = %q", ws[0].Message)
	}
	err := c.Err()
	if err == nil || !strings.Contains(err.Error(), "angular") {
		t.Errorf("Err() = %v, want joined warnings", err)
	}
}
