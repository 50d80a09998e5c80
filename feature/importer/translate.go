package importer

import (
	"fmt"

	"netbox-importer/core/inventory"
	"netbox-importer/core/netbox"
)

// Local-model mode values as produced by device discovery.
const (
	modeAccess    = "ACCESS"
	modeTrunk     = "TRUNK"
	modeL3SubVlan = "L3_SUB_VLAN"
)

// connectedEndpointInterface marks an interface as terminating a cable.
const connectedEndpointInterface = "dcim.interface"

// translateInterfaceAttrs converts a local interface attribute set into the
// parameter shape NetBox expects. It performs no I/O beyond read-only
// Context lookups. A key present with a nil value means "clear the remote
// field"; an absent key means "leave it untouched".
func (a *Adapter) translateInterfaceAttrs(id inventory.InterfaceID, attrs inventory.InterfaceAttrs) (netbox.Params, error) {
	device := a.inv.Device(id.DeviceName)
	if device == nil || !device.RemoteID.Valid() {
		return nil, fmt.Errorf("device %q is not resolved in %s, interface %s arrived out of order",
			id.DeviceName, a.inv.Name(), id.Name)
	}

	params := netbox.Params{
		"device": device.RemoteID.Int64(),
		"name":   id.Name,
	}

	switch {
	case attrs.IsLag:
		params["type"] = "lag"
	case attrs.IsVirtual:
		params["type"] = "virtual"
	default:
		params["type"] = "other"
	}

	if attrs.MTU != nil {
		params["mtu"] = *attrs.MTU
	}
	// NetBox expects a string here, never a null.
	if attrs.Description != nil {
		params["description"] = *attrs.Description
	}

	// ACCESS and TRUNK map onto two different remote fields, not one enum.
	if attrs.SwitchportMode == modeAccess {
		params["mode"] = "access"
	} else if attrs.SwitchportMode == modeTrunk {
		params["switchport_mode"] = "tagged"
	}

	if a.cfg.VlansEnabled() {
		if attrs.Mode == modeAccess || attrs.Mode == modeTrunk {
			if attrs.AccessVlan != "" {
				params["untagged_vlan"] = a.vlanRemoteID(attrs.AccessVlan)
			} else {
				params["untagged_vlan"] = nil
			}
		}
		if attrs.Mode == modeTrunk || attrs.Mode == modeL3SubVlan {
			if len(attrs.AllowedVlans) > 0 {
				tagged := make([]any, 0, len(attrs.AllowedVlans))
				for _, uid := range attrs.AllowedVlans {
					tagged = append(tagged, a.vlanRemoteID(uid))
				}
				params["tagged_vlans"] = tagged
			} else {
				params["tagged_vlans"] = []any{}
			}
		}
	}

	if attrs.IsLagMember != nil {
		if *attrs.IsLagMember {
			params["lag"] = a.lagRemoteID(attrs.Parent)
		} else {
			params["lag"] = nil
		}
	}

	return params, nil
}

// vlanRemoteID resolves a VLAN uid to its remote identifier. An unresolved
// VLAN yields nil; only NetBox decides whether a null-linked object is
// acceptable.
func (a *Adapter) vlanRemoteID(uid string) any {
	vlan := a.inv.VlanByUID(uid)
	if vlan != nil && vlan.RemoteID.Valid() {
		return vlan.RemoteID.Int64()
	}
	return nil
}

// lagRemoteID resolves the parent LAG interface of a member port.
func (a *Adapter) lagRemoteID(parentUID string) any {
	parent := a.inv.InterfaceByUID(parentUID)
	if parent != nil && parent.RemoteID.Valid() {
		return parent.RemoteID.Int64()
	}
	return nil
}
