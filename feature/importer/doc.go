// Package importer contains the NetBox reconciliation adapter: the layer
// that maps local inventory entities onto NetBox API calls and enforces the
// ordering and referential-integrity invariants the NetBox API does not
// enforce itself.
//
// The adapter absorbs expected business-rule conflicts (duplicate VLAN ids,
// already-cabled ports, protected management addresses) as Skipped outcomes
// instead of errors, so one entity's conflict cannot corrupt dependent
// entities. Transport failures and ordering violations surface as Failed
// outcomes and propagate.
package importer
