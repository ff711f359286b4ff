package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/imaging"
	"github.com/ironsheep/hsv-wizard/internal/overlay"
	"github.com/ironsheep/hsv-wizard/internal/session"
	"github.com/ironsheep/hsv-wizard/internal/threshold"
	"github.com/ironsheep/hsv-wizard/internal/undo"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "hsv_load_image", "hsv_pointer").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Any "answer" argument is handed to the prompter first so that a prompt
// raised by the call can be satisfied. Messages the session raises are
// returned in the result of state-changing tools.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	var common struct {
		Answer *Answer `json:"answer"`
	}
	if err := decode(args, &common); err != nil {
		return nil, err
	}
	s.prompt.arm(common.Answer)
	defer s.prompt.drain()

	switch name {
	// Session
	case "hsv_load_image":
		return s.handleLoadImage(args)
	case "hsv_get_state":
		return s.result(), nil
	case "hsv_save_image":
		return s.handleSaveImage(args)

	// Threshold and view
	case "hsv_set_threshold":
		return s.handleSetThreshold(args)
	case "hsv_zoom":
		return s.handleZoom(args)
	case "hsv_set_viewport":
		return s.handleSetViewport(args)

	// Modes and actions
	case "hsv_request_mode":
		return s.handleRequestMode(args)
	case "hsv_calibrate_pixel_size":
		return s.action(s.sess.CalibratePixelSize())
	case "hsv_add_scale_bar":
		return s.action(s.sess.AddScaleBar())
	case "hsv_undo":
		err := s.sess.Undo()
		if errors.Is(err, undo.ErrNothingToUndo) {
			err = nil
		}
		return s.action(err)

	// Pointer input
	case "hsv_pointer":
		return s.handlePointer(args)
	case "hsv_modifier":
		return s.handleModifier(args)
	case "hsv_wheel_pointer":
		return s.handleWheelPointer(args)

	// Rendering
	case "hsv_render":
		return s.handleRender(args)
	case "hsv_color_wheel":
		return s.handleColorWheel(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decode unmarshals tool arguments. Missing arguments leave v untouched.
func decode(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// stateResult is returned by every tool that changes the session.
type stateResult struct {
	State    session.State `json:"state"`
	Messages []Message     `json:"messages,omitempty"`
}

func (s *Server) result() *stateResult {
	return &stateResult{State: s.sess.Snapshot(), Messages: s.prompt.drain()}
}

// action returns the state after a session action, or its error.
func (s *Server) action(err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return s.result(), nil
}

// === Session Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

type loadResult struct {
	Image *imaging.ImageInfo `json:"image"`
	*stateResult
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	info, err := imaging.Describe(a.Path, img)
	if err != nil {
		return nil, err
	}
	s.sess.LoadImage(img)
	return &loadResult{Image: info, stateResult: s.result()}, nil
}

type saveResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleSaveImage(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	out, err := s.sess.Composite()
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(a.Path, out); err != nil {
		return nil, err
	}
	return &saveResult{Path: a.Path, Width: out.Bounds().Dx(), Height: out.Bounds().Dy()}, nil
}

// === Threshold and View Handlers ===

type setThresholdArgs struct {
	HueLow  *float64 `json:"hue_low"`
	HueHigh *float64 `json:"hue_high"`
	SatLow  *float64 `json:"sat_low"`
	SatHigh *float64 `json:"sat_high"`
	ValLow  *float64 `json:"val_low"`
	ValHigh *float64 `json:"val_high"`

	RGBLower *threshold.RGB `json:"rgb_lower"`
	RGBUpper *threshold.RGB `json:"rgb_upper"`
}

// valueOr returns *p, or def when p is nil.
func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (s *Server) handleSetThreshold(args json.RawMessage) (interface{}, error) {
	var a setThresholdArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	// RGB bounds set all six values; explicit HSV bounds then override.
	if (a.RGBLower == nil) != (a.RGBUpper == nil) {
		return nil, errors.New("rgb_lower and rgb_upper must be given together")
	}
	if a.RGBLower != nil {
		s.sess.SetThresholdRGB(*a.RGBLower, *a.RGBUpper)
	}

	r := s.sess.Threshold()
	if a.HueLow != nil || a.HueHigh != nil {
		s.sess.SetHue(valueOr(a.HueLow, r.HueLow), valueOr(a.HueHigh, r.HueHigh))
	}
	if a.SatLow != nil || a.SatHigh != nil {
		s.sess.SetSaturation(valueOr(a.SatLow, r.SatLow), valueOr(a.SatHigh, r.SatHigh))
	}
	if a.ValLow != nil || a.ValHigh != nil {
		s.sess.SetValue(valueOr(a.ValLow, r.ValLow), valueOr(a.ValHigh, r.ValHigh))
	}
	return s.result(), nil
}

type zoomArgs struct {
	Action string  `json:"action"`
	Zoom   float64 `json:"zoom"`
}

func (s *Server) handleZoom(args json.RawMessage) (interface{}, error) {
	var a zoomArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	switch a.Action {
	case "in":
		s.sess.ZoomIn()
	case "out":
		s.sess.ZoomOut()
	case "set":
		if a.Zoom <= 0 {
			return nil, fmt.Errorf("zoom must be positive, got %v", a.Zoom)
		}
		s.sess.SetZoom(a.Zoom)
	default:
		return nil, fmt.Errorf("unknown zoom action: %q", a.Action)
	}
	return s.result(), nil
}

type viewportArgs struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleSetViewport(args json.RawMessage) (interface{}, error) {
	var a viewportArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if a.Width < 0 || a.Height < 0 {
		return nil, fmt.Errorf("viewport size must not be negative, got %vx%v", a.Width, a.Height)
	}
	s.sess.SetViewport(a.Width, a.Height)
	return s.result(), nil
}

// === Mode Handlers ===

type requestModeArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handleRequestMode(args json.RawMessage) (interface{}, error) {
	var a requestModeArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	switch a.Mode {
	case "color_pick":
		return s.action(s.sess.RequestColorPick())
	case "calibration_line":
		return s.action(s.sess.RequestCalibrationLine())
	case "measuring":
		return s.action(s.sess.RequestMeasuring())
	case "finish":
		s.sess.FinishMode()
		return s.result(), nil
	default:
		return nil, fmt.Errorf("unknown mode: %q", a.Mode)
	}
}

// === Pointer Handlers ===

type pointerArgs struct {
	Event string `json:"event"`
	session.Pointer
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	switch a.Event {
	case "press":
		return s.action(s.sess.PointerPress(a.Pointer))
	case "move":
		return s.action(s.sess.PointerMove(a.Pointer))
	case "release":
		return s.action(s.sess.PointerRelease(a.Pointer))
	default:
		return nil, fmt.Errorf("unknown pointer event: %q", a.Event)
	}
}

type modifierArgs struct {
	Shift bool `json:"shift"`
}

func (s *Server) handleModifier(args json.RawMessage) (interface{}, error) {
	var a modifierArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	s.sess.SetModifier(a.Shift)
	return s.result(), nil
}

type wheelPointerArgs struct {
	Widget string  `json:"widget"`
	Event  string  `json:"event"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type wheelPointerResult struct {
	Handle string `json:"handle,omitempty"`
	*stateResult
}

func (s *Server) handleWheelPointer(args json.RawMessage) (interface{}, error) {
	var a wheelPointerArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	hueBar := false
	switch a.Widget {
	case "", "wheel":
	case "hue_bar":
		hueBar = true
	default:
		return nil, fmt.Errorf("unknown widget: %q", a.Widget)
	}

	res := &wheelPointerResult{}
	switch {
	case a.Event == "press" && hueBar:
		res.Handle = s.sess.HueBarPress(a.X).String()
	case a.Event == "press":
		res.Handle = s.sess.WheelPress(a.X, a.Y).String()
	case a.Event == "drag" && hueBar:
		s.sess.HueBarDrag(a.X)
	case a.Event == "drag":
		s.sess.WheelDrag(a.X, a.Y)
	case a.Event == "release":
		s.sess.WheelRelease()
	default:
		return nil, fmt.Errorf("unknown wheel event: %q", a.Event)
	}
	res.stateResult = s.result()
	return res, nil
}

// === Rendering Handlers ===

type renderArgs struct {
	IncludeImage *bool `json:"include_image"`
}

type renderResult struct {
	Zoom     float64               `json:"zoom"`
	Scroll   geometry.Point        `json:"scroll"`
	Selected int                   `json:"selected_pixels"`
	Lines    []overlay.Line        `json:"lines"`
	Labels   []overlay.Label       `json:"labels"`
	Image    *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	f, err := s.sess.Render()
	if err != nil {
		return nil, err
	}

	res := &renderResult{Zoom: f.Zoom, Scroll: f.Scroll, Selected: f.Selected, Lines: f.Lines, Labels: f.Labels}
	if a.IncludeImage == nil || *a.IncludeImage {
		if res.Image, err = imaging.EncodePNG(f.Image); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type colorWheelArgs struct {
	Widget string `json:"widget"`
}

type colorWheelResult struct {
	Widget string                `json:"widget"`
	Image  *imaging.EncodedImage `json:"image"`

	// Wheel overlays.
	Sector []geometry.Point `json:"sector,omitempty"`
	Lines  []overlay.Line   `json:"lines,omitempty"`

	// Hue bar overlays.
	Selection []overlay.Rect `json:"selection,omitempty"`
}

func (s *Server) handleColorWheel(args json.RawMessage) (interface{}, error) {
	var a colorWheelArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}

	res := &colorWheelResult{Widget: a.Widget}
	var err error
	switch a.Widget {
	case "", "wheel":
		res.Widget = "wheel"
		sector, lines := s.sess.WheelOverlays()
		res.Sector, res.Lines = sector, lines[:]
		res.Image, err = imaging.EncodePNG(s.sess.ColorWheel())
	case "hue_bar":
		res.Selection = s.sess.HueBarSelection()
		res.Image, err = imaging.EncodePNG(s.sess.HueBar())
	default:
		return nil, fmt.Errorf("unknown widget: %q", a.Widget)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
