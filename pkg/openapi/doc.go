// Package openapi derives fabricators from the component schemas of an
// OpenAPI document, so API tests can fabricate payload-shaped fixtures
// without hand-writing templates. String properties become sequences unless
// the schema supplies a default or enum, booleans keep their defaults,
// numeric properties track the instance id, and referenced or inline object
// schemas become associations to child fabricators. Parsing is backed by
// kin-openapi; derived fabricators are memoized per schema so association
// counters stay scoped exactly like hand-built fabricators.
package openapi
