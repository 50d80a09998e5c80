package diff

import (
	"netbox-importer/core/inventory"
)

// Op is the kind of state change an intent requests.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Intent is one entity-level change needed to make the observed state match
// the desired state.
type Intent struct {
	Op   Op             `json:"op"`
	Kind inventory.Kind `json:"kind"`
	UID  string         `json:"uid"`
}

// Plan is the ordered list of intents for one reconciliation run.
type Plan struct {
	Intents []Intent `json:"intents"`
}

// Len returns the number of intents in the plan.
func (p *Plan) Len() int { return len(p.Intents) }

// createOrder lists the synced kinds in dependency order: VLANs before the
// interfaces that reference them, interfaces before the addresses and
// cables that attach to them. Sites and devices are anchors that must
// already exist remotely; they are never created, updated or deleted here.
var createOrder = []inventory.Kind{
	inventory.KindVlan,
	inventory.KindPrefix,
	inventory.KindInterface,
	inventory.KindIPAddress,
	inventory.KindCable,
}

// deleteOrder is the reverse: dependents go before their dependencies.
// VLANs and prefixes are never deleted; stale ones are left for an
// operator to clean up.
var deleteOrder = []inventory.Kind{
	inventory.KindCable,
	inventory.KindIPAddress,
	inventory.KindInterface,
}

// Calculate computes the intents that turn the observed inventory into the
// desired one. UIDs are visited in sorted order within each phase so plans
// are deterministic.
func Calculate(desired, observed *inventory.Context) *Plan {
	plan := &Plan{}

	for _, kind := range createOrder {
		for _, uid := range desired.UIDs(kind) {
			if _, exists := observed.Get(kind, uid); !exists {
				plan.Intents = append(plan.Intents, Intent{Op: OpCreate, Kind: kind, UID: uid})
			}
		}
	}

	// Updates exist only for the kinds the adapter can mutate in place.
	for _, uid := range desired.UIDs(inventory.KindVlan) {
		want := desired.VlanByUID(uid)
		have := observed.VlanByUID(uid)
		if have != nil && !want.Attrs.Equal(have.Attrs) {
			plan.Intents = append(plan.Intents, Intent{Op: OpUpdate, Kind: inventory.KindVlan, UID: uid})
		}
	}
	for _, uid := range desired.UIDs(inventory.KindInterface) {
		want := desired.InterfaceByUID(uid)
		have := observed.InterfaceByUID(uid)
		if have != nil && !want.Attrs.Equal(have.Attrs) {
			plan.Intents = append(plan.Intents, Intent{Op: OpUpdate, Kind: inventory.KindInterface, UID: uid})
		}
	}

	for _, kind := range deleteOrder {
		for _, uid := range observed.UIDs(kind) {
			if _, exists := desired.Get(kind, uid); !exists {
				plan.Intents = append(plan.Intents, Intent{Op: OpDelete, Kind: kind, UID: uid})
			}
		}
	}

	return plan
}
