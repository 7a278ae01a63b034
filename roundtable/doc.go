// Package roundtable implements the discussion topology: every roster member
// contributes to a fixed sequence of discussion rounds, later speakers see
// earlier contributions, and consensus points are extracted from the
// assembled transcript. Discussion history persists across tasks until Reset
// is called.
package roundtable
