// Package mcp provides an MCP (Model Context Protocol) server adapter for archivo.
// It lets AI assistants search the local document index and trigger rebuilds.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrReindexUnavailable is returned by the reindex tool when no index
// service was provided.
var ErrReindexUnavailable = errors.New("mcp: reindex is not available")
