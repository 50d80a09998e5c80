// Package inventory defines the typed entity model for one reconciliation
// run and the Context registry that holds it.
//
// Entities (Site, Device, Interface, IPAddress, Prefix, Vlan, Cable) are
// named by identity keys, never by memory reference: local and remote stores
// are separate objects of truth, so all cross-entity relationships resolve
// through the Context. The Context is also the single place the
// no-duplicate-identity invariant is enforced.
//
// A RemoteID is assigned to an entity only after it has been successfully
// created (or discovered) in NetBox; its zero value means the entity is not
// yet materialized remotely.
package inventory
