// Package server implements an MCP (Model Context Protocol) server exposing
// label extraction as tools.
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
//   - label_reconstruct: Rebuild the lines of one annotation file without
//     writing anything. Inconclusive reconstructions are reported, not failed.
//   - label_extract: Run the full item pipeline for one identifier, writing
//     its transcript and crops to the output directory.
//   - label_discover: List the identifiers a batch run would process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error string, including its identifier tag where one exists
//
// Logging goes to stderr; stdout carries only protocol traffic.
package server
