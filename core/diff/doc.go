// Package diff computes the ordered list of entity-level create, update and
// delete intents needed to converge a remote inventory onto a desired one.
//
// The planner is deliberately thin: it only decides WHAT changes and in
// which order. All translation, dependency resolution and apply-time safety
// live in the importer adapter that executes the plan.
package diff
