package xd

// Object types as they appear in the "type" discriminator.
const (
	TypeArtboard        = "artboard"
	TypeGroup           = "group"
	TypeShape           = "shape"
	TypeText            = "text"
	TypeSymbolReference = "syncRef"
)

// Shape types.
const (
	ShapeRect     = "rect"
	ShapeCircle   = "circle"
	ShapeEllipse  = "ellipse"
	ShapeLine     = "line"
	ShapePath     = "path"
	ShapeCompound = "compound"
	ShapePolygon  = "polygon"
)

// Fill types.
const (
	FillNone     = "none"
	FillSolid    = "solid"
	FillGradient = "gradient"
	FillPattern  = "pattern"
)

// Stroke alignments.
const (
	AlignCenter  = "center"
	AlignInside  = "inside"
	AlignOutside = "outside"
)

// Text frame types.
const (
	FramePositioned = "positioned"
	FrameArea       = "area"
	FrameFixed      = "fixed"
	FrameAutoHeight = "autoHeight"
)

// Manifest is the archive's top-level "manifest" file.
type Manifest struct {
	Name     string           `json:"name"`
	Children []*ManifestEntry `json:"children"`
}

// ManifestEntry is one node of the manifest tree.
type ManifestEntry struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Path     string           `json:"path"`
	Bounds   *Bounds          `json:"uxdesign#bounds,omitempty"`
	Viewport *Viewport        `json:"uxdesign#viewport,omitempty"`
	Children []*ManifestEntry `json:"children,omitempty"`
}

// Bounds is a rectangle in document units.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is the visible area of an artboard.
type Viewport struct {
	Height float64 `json:"height"`
}

// ArtboardGraph is one artboard's graphicContent file.
type ArtboardGraph struct {
	Version  string    `json:"version,omitempty"`
	Children []*Object `json:"children"`
}

// Resources is the shared resources graphicContent file.
type Resources struct {
	Version   string                   `json:"version,omitempty"`
	Resources ResourceTable            `json:"resources"`
	Artboards map[string]*ArtboardInfo `json:"artboards,omitempty"`
}

// ResourceTable holds the symbol library and gradient definitions.
type ResourceTable struct {
	Meta      ResourceMeta                 `json:"meta"`
	Gradients map[string]*GradientResource `json:"gradients,omitempty"`
}

// ResourceMeta wraps the symbol library.
type ResourceMeta struct {
	UX ResourceUX `json:"ux"`
}

// ResourceUX lists the registered symbols.
type ResourceUX struct {
	Symbols []*Object `json:"symbols,omitempty"`
}

// ArtboardInfo is the canvas metadata of one artboard.
type ArtboardInfo struct {
	Name           string   `json:"name"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	Width          float64  `json:"width"`
	Height         float64  `json:"height"`
	ViewportHeight *float64 `json:"viewportHeight,omitempty"`
}

// GradientResource is a gradient definition referenced by fills.
type GradientResource struct {
	Type  string         `json:"type"`
	Stops []GradientStop `json:"stops"`
}

// Gradient resource types.
const (
	GradientLinear = "linear"
	GradientRadial = "radial"
)

// GradientStop is one color stop.
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  Color   `json:"color"`
}

// Object is a node of a design document. Exactly one of Group, Shape and
// Text is meaningful, selected by Type. Symbol references carry
// SyncSourceGUID and are resolved away before layout.
type Object struct {
	ID             string     `json:"id"`
	GUID           string     `json:"guid,omitempty"`
	Name           string     `json:"name,omitempty"`
	Type           string     `json:"type"`
	Visible        *bool      `json:"visible,omitempty"`
	Transform      *Transform `json:"transform,omitempty"`
	Style          *Style     `json:"style,omitempty"`
	Shape          *Shape     `json:"shape,omitempty"`
	Text           *Text      `json:"text,omitempty"`
	Group          *Group     `json:"group,omitempty"`
	Artboard       *Group     `json:"artboard,omitempty"`
	Meta           *Meta      `json:"meta,omitempty"`
	SyncSourceGUID string     `json:"syncSourceGuid,omitempty"`
}

// Transform is a 2x3 affine transform mapping local to parent space:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Transform struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	D  float64 `json:"d"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// Style holds paint and text attributes.
type Style struct {
	Fill           *Fill           `json:"fill,omitempty"`
	Stroke         *Stroke         `json:"stroke,omitempty"`
	Opacity        *float64        `json:"opacity,omitempty"`
	BlendMode      string          `json:"blendMode,omitempty"`
	Isolation      string          `json:"isolation,omitempty"`
	Font           *Font           `json:"font,omitempty"`
	TextAttributes *TextAttributes `json:"textAttributes,omitempty"`
}

// Fill is a shape or text fill.
type Fill struct {
	Type     string        `json:"type"`
	Color    *Color        `json:"color,omitempty"`
	Gradient *GradientFill `json:"gradient,omitempty"`
	Pattern  *Pattern      `json:"pattern,omitempty"`
}

// Color is an RGB color with channels in 0..255 and optional alpha in 0..1.
type Color struct {
	Mode  string     `json:"mode,omitempty"`
	Value ColorValue `json:"value"`
	Alpha *float64   `json:"alpha,omitempty"`
}

// ColorValue holds the color channels.
type ColorValue struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// GradientFill places a gradient resource on a shape.
type GradientFill struct {
	Ref   string   `json:"ref"`
	Units string   `json:"units,omitempty"`
	X1    float64  `json:"x1"`
	Y1    float64  `json:"y1"`
	X2    float64  `json:"x2"`
	Y2    float64  `json:"y2"`
	CX    float64  `json:"cx"`
	CY    float64  `json:"cy"`
	R     float64  `json:"r"`
	FX    *float64 `json:"fx,omitempty"`
	FY    *float64 `json:"fy,omitempty"`
}

// Pattern is a bitmap fill stored as an archive resource.
type Pattern struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Meta   *PatternMeta `json:"meta,omitempty"`
}

// PatternMeta locates the bitmap inside the archive.
type PatternMeta struct {
	UX PatternUX `json:"ux"`
}

// PatternUX holds the resource uid of a bitmap.
type PatternUX struct {
	UID string `json:"uid"`
}

// Stroke describes an outline.
type Stroke struct {
	Type       string    `json:"type"`
	Color      *Color    `json:"color,omitempty"`
	Width      float64   `json:"width"`
	Align      string    `json:"align,omitempty"`
	Cap        string    `json:"cap,omitempty"`
	Join       string    `json:"join,omitempty"`
	MiterLimit *float64  `json:"miterLimit,omitempty"`
	Dash       []float64 `json:"dash,omitempty"`
}

// Font selects a typeface.
type Font struct {
	PostscriptName string  `json:"postscriptName"`
	Family         string  `json:"family"`
	Style          string  `json:"style"`
	Size           float64 `json:"size"`
}

// TextAttributes holds paragraph settings.
type TextAttributes struct {
	ParagraphAlign string   `json:"paragraphAlign,omitempty"`
	LineHeight     *float64 `json:"lineHeight,omitempty"`
	LetterSpacing  float64  `json:"letterSpacing,omitempty"`
}

// Shape is the geometry payload of a shape object. Which fields are used
// depends on Type.
type Shape struct {
	Type     string    `json:"type"`
	X        float64   `json:"x,omitempty"`
	Y        float64   `json:"y,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
	R        Radius    `json:"r,omitempty"`
	CX       float64   `json:"cx,omitempty"`
	CY       float64   `json:"cy,omitempty"`
	RX       float64   `json:"rx,omitempty"`
	RY       float64   `json:"ry,omitempty"`
	X1       float64   `json:"x1,omitempty"`
	Y1       float64   `json:"y1,omitempty"`
	X2       float64   `json:"x2,omitempty"`
	Y2       float64   `json:"y2,omitempty"`
	Path     string    `json:"path,omitempty"`
	Winding  string    `json:"winding,omitempty"`
	Points   []Point   `json:"points,omitempty"`
	Children []*Object `json:"children,omitempty"`
}

// Point is a polygon vertex.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Text is the payload of a text object.
type Text struct {
	RawText    string      `json:"rawText"`
	Frame      *TextFrame  `json:"frame,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

// TextFrame is the text box kind and size.
type TextFrame struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Paragraph is a list of laid-out lines, each a list of runs.
type Paragraph struct {
	Lines [][]LineRun `json:"lines"`
}

// LineRun is a positioned text run; Y is the baseline.
type LineRun struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	From int     `json:"from"`
	To   int     `json:"to"`
}

// Group holds ordered children; order is back-to-front.
type Group struct {
	Children []*Object `json:"children"`
}

// Meta is the extended metadata block.
type Meta struct {
	UX *UX `json:"ux,omitempty"`
}

// UX holds layout-related metadata.
type UX struct {
	SymbolID          string             `json:"symbolId,omitempty"`
	ConstraintLeft    *bool              `json:"constraintLeft,omitempty"`
	ConstraintRight   *bool              `json:"constraintRight,omitempty"`
	ConstraintTop     *bool              `json:"constraintTop,omitempty"`
	ConstraintBottom  *bool              `json:"constraintBottom,omitempty"`
	Rotation          *float64           `json:"rotation,omitempty"`
	ScrollingType     string             `json:"scrollingType,omitempty"`
	ViewportWidth     *float64           `json:"viewportWidth,omitempty"`
	ViewportHeight    *float64           `json:"viewportHeight,omitempty"`
	OffsetX           *float64           `json:"offsetX,omitempty"`
	OffsetY           *float64           `json:"offsetY,omitempty"`
	RepeatGrid        *RepeatGrid        `json:"repeatGrid,omitempty"`
	ClipPathResources *ClipPathResources `json:"clipPathResources,omitempty"`
	MarkedForExport   bool               `json:"markedForExport,omitempty"`
}

// Scrolling types.
const (
	ScrollVertical   = "vertical"
	ScrollHorizontal = "horizontal"
	ScrollPanning    = "panning"
)

// RepeatGrid describes a repeat grid group.
type RepeatGrid struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PaddingX   float64 `json:"paddingX"`
	PaddingY   float64 `json:"paddingY"`
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
}

// ClipPathResources holds the clip shape of a mask group.
type ClipPathResources struct {
	Type     string    `json:"type"`
	Children []*Object `json:"children"`
}
