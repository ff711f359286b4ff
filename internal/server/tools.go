package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// answerSchema describes the reply to a length prompt raised by the call.
var answerSchema = map[string]interface{}{
	"type":        "object",
	"description": "Reply to the length prompt this call may raise. Omit to cancel the prompt.",
	"properties": map[string]interface{}{
		"length": map[string]interface{}{
			"type":        "number",
			"description": "Physical length, must be positive",
		},
		"units": map[string]interface{}{
			"type":        "string",
			"description": "Unit name, e.g. \"µm\". Ignored for scale bars.",
		},
	},
	"required": []string{"length"},
}

func number(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func rgbSchema(description string) map[string]interface{} {
	channel := map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255}
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties":  map[string]interface{}{"r": channel, "g": channel, "b": channel},
		"required":    []string{"r", "g", "b"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "hsv_load_image",
			Description: "Load an image file into the session. Resets threshold, zoom, calibration, measurements, scale bar and undo history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hsv_get_state",
			Description: "Return the session state: mode, threshold, zoom, scroll, calibration, measurements, scale bar and undo depth.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "hsv_save_image",
			Description: "Save the masked image at original scale with the scale bar baked in. The format follows the file extension (PNG when absent).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute output path",
					},
				},
				"required": []string{"path"},
			},
		},

		// Threshold and view
		{
			Name:        "hsv_set_threshold",
			Description: "Set any of the HSV bounds. Hue is in degrees and wraps through 0 when hue_low > hue_high; saturation and value are percentages.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hue_low":   number("Lower hue bound, 0-360"),
					"hue_high":  number("Upper hue bound, 0-360"),
					"sat_low":   number("Lower saturation bound, 0-100"),
					"sat_high":  number("Upper saturation bound, 0-100"),
					"val_low":   number("Lower value bound, 0-100"),
					"val_high":  number("Upper value bound, 0-100"),
					"rgb_lower": rgbSchema("Lower bound as an RGB colour; sets all six bounds together with rgb_upper. HSV bounds in the same call override it"),
					"rgb_upper": rgbSchema("Upper bound as an RGB colour"),
				},
			},
		},
		{
			Name:        "hsv_zoom",
			Description: "Zoom the view in or out by one step, or set the zoom factor.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type": "string",
						"enum": []string{"in", "out", "set"},
					},
					"zoom": number("Zoom factor for action \"set\""),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "hsv_set_viewport",
			Description: "Set the size of the visible area in display pixels. Scrolling is bounded by it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  number("Viewport width"),
					"height": number("Viewport height"),
				},
				"required": []string{"width", "height"},
			},
		},

		// Modes and actions
		{
			Name:        "hsv_request_mode",
			Description: "Arm an interaction mode, or finish the active one. Measuring requires a calibrated scale.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": map[string]interface{}{
						"type": "string",
						"enum": []string{"color_pick", "calibration_line", "measuring", "finish"},
					},
				},
				"required": []string{"mode"},
			},
		},
		{
			Name:        "hsv_calibrate_pixel_size",
			Description: "Calibrate by giving the physical size of one pixel directly.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"answer": answerSchema,
				},
			},
		},
		{
			Name:        "hsv_add_scale_bar",
			Description: "Place a scale bar of the given physical length near the bottom-left corner, replacing any existing bar.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"answer": answerSchema,
				},
			},
		},
		{
			Name:        "hsv_undo",
			Description: "Undo the most recent measurement, calibration or scale bar placement.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Pointer input
		{
			Name:        "hsv_pointer",
			Description: "Send a primary-button pointer event in viewport coordinates. Releasing a calibration line asks for its length through answer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"event": map[string]interface{}{
						"type": "string",
						"enum": []string{"press", "move", "release"},
					},
					"x": number("Viewport X coordinate"),
					"y": number("Viewport Y coordinate"),
					"shift": map[string]interface{}{
						"type":        "boolean",
						"description": "Snap modifier held (calibration lines snap to 15° steps). Omit to keep the hsv_modifier state",
					},
					"answer": answerSchema,
				},
				"required": []string{"event", "x", "y"},
			},
		},
		{
			Name:        "hsv_modifier",
			Description: "Report the snap modifier key state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"shift": map[string]interface{}{"type": "boolean"},
				},
				"required": []string{"shift"},
			},
		},
		{
			Name:        "hsv_wheel_pointer",
			Description: "Drag the hue threshold lines on the color wheel (wheel coordinates) or the edges of the hue bar selection (x only).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"widget": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"wheel", "hue_bar"},
						"default": "wheel",
					},
					"event": map[string]interface{}{
						"type": "string",
						"enum": []string{"press", "drag", "release"},
					},
					"x": number("Widget X coordinate"),
					"y": number("Wheel Y coordinate"),
				},
				"required": []string{"event"},
			},
		},

		// Rendering
		{
			Name:        "hsv_render",
			Description: "Render the current frame: the masked image at the current zoom as base64 PNG plus overlay geometry.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the masked image. Default true",
						"default":     true,
					},
				},
			},
		},
		{
			Name:        "hsv_color_wheel",
			Description: "Render the color wheel or the hue bar as base64 PNG, with the threshold overlay geometry for it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"widget": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"wheel", "hue_bar"},
						"default": "wheel",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
