// Package server exposes the orchestration manager over HTTP. It is a thin
// control surface: architecture selection, task submission, history,
// performance comparison and report export.
package server
