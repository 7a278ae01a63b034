// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer ArchonLogger with contextual
// helpers (architecture, task, component) and domain specific logging helpers
// for strategies, generators and event dispatch.
package logging
