package xd

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name parameters recognized by the layout passes.
const (
	ParamButton     = "button"
	ParamInputField = "inputfield"
	ParamScrollbar  = "scrollbar"
	ParamSVG        = "svg"
	ParamToggle     = "toggle"
	ParamMultiItems = "multiitems"
	ParamSlice      = "slice"
	ParamImage      = "image"
)

// SimpleName returns the display name without its "@param" suffix.
func (o *Object) SimpleName() string {
	name, _, _ := strings.Cut(o.Name, "@")
	return strings.TrimSpace(name)
}

// Params returns the case-folded annotation tokens of "Name@p1,p2".
func (o *Object) Params() []string {
	_, tail, ok := strings.Cut(o.Name, "@")
	if !ok {
		return nil
	}
	fold := cases.Fold()
	var out []string
	for _, p := range strings.Split(tail, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, fold.String(p))
	}
	return out
}

// HasParam reports whether the name carries the given token.
func (o *Object) HasParam(param string) bool {
	for _, p := range o.Params() {
		if p == param {
			return true
		}
	}
	return false
}

// HasSuffix reports whether the simple name ends with suffix, ignoring case.
func (o *Object) HasSuffix(suffix string) bool {
	fold := cases.Fold()
	return strings.HasSuffix(fold.String(o.SimpleName()), fold.String(suffix))
}
