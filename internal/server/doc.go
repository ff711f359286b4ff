// Package server implements the MCP (Model Context Protocol) server that
// drives an HSV wizard session.
//
// This package provides a JSON-RPC 2.0 server that exposes one session.Session
// through MCP tools, so the thresholding, calibration and measurement engine
// can be operated without a GUI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - hsv_load_image: Load an image and reset the session
//   - hsv_get_state: Read the session state
//   - hsv_save_image: Save the masked image with the scale bar baked in
//
// Threshold and view:
//   - hsv_set_threshold: Set hue, saturation and value bounds, or all six from two RGB colours
//   - hsv_zoom: Zoom in, out or to a factor
//   - hsv_set_viewport: Set the visible area used to bound scrolling
//
// Modes and actions:
//   - hsv_request_mode: Arm color picking, a calibration line or measuring, or finish
//   - hsv_calibrate_pixel_size: Calibrate from a known pixel size
//   - hsv_add_scale_bar: Place a scale bar
//   - hsv_undo: Undo the last measurement, calibration or scale bar
//
// Pointer input:
//   - hsv_pointer: Press, move and release in viewport coordinates
//   - hsv_modifier: Snap modifier state
//   - hsv_wheel_pointer: Drag the hue lines on the color wheel or the hue bar edges
//
// Rendering:
//   - hsv_render: Masked image at the current zoom plus overlays
//   - hsv_color_wheel: Color wheel or hue bar raster plus overlays
//
// # Prompts
//
// Some actions need an answer from the operator: the length of a calibration
// line, a pixel size or a scale bar length. The answer travels on the tool
// call that raises the prompt, as an "answer" object. A call that raises a
// prompt without carrying an answer cancels it. Notifications raised during
// a call are returned in the "messages" field of its result.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Undo with an empty history is not an error; it is reported as a message.
//
// # Usage
//
// The server is typically started by an MCP client through the serve
// command:
//
//	srv := server.New(version, logger, session.OptionsFromConfig(cfg)...)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
