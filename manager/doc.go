// Package manager selects between the pluggable orchestration strategies,
// runs tasks through the active one, and keeps the processing history that
// powers performance comparison and export.
package manager
