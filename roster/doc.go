// Package roster loads and validates the static list of agent identities a
// topology operates on. A roster is read once at startup (from YAML or the
// built-in default team) and treated as immutable thereafter.
package roster
