// Package definition compiles declarative YAML fixture definitions into
// fabricators. A definition document names models and their ordered
// attributes; each attribute is a literal value, a sequence format string
// applied to the instance id, a template expression rendered against the
// attributes resolved so far, or an association to another model in the same
// document. Association edges are resolved at load time so a registry hands
// back fully wired fabricators.
package definition
