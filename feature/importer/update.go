package importer

import (
	"context"
	"fmt"

	"netbox-importer/core/inventory"
	"netbox-importer/core/netbox"

	"go.uber.org/zap"
)

// UpdateInterface reconciles an interface's attributes with the desired
// set. Identical attributes short-circuit without a remote call. The local
// attributes are only replaced after the remote accepted the change.
func (a *Adapter) UpdateInterface(ctx context.Context, intf *inventory.Interface, attrs inventory.InterfaceAttrs) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if intf.Attrs.Equal(attrs) {
		return unchanged()
	}
	if !intf.RemoteID.Valid() {
		return failed(fmt.Errorf("interface %s has no remote id, cannot update", intf.UID()))
	}

	params, err := a.translateInterfaceAttrs(intf.ID, attrs)
	if err != nil {
		return failed(err)
	}
	if _, err := a.client.Interfaces().Update(ctx, intf.RemoteID.Int64(), params); err != nil {
		return failed(fmt.Errorf("failed to update interface %s: %w", intf.UID(), err))
	}

	intf.Attrs = attrs
	a.log.Info("Updated interface",
		zap.String("device", intf.ID.DeviceName),
		zap.String("interface", intf.ID.Name))
	return applied()
}

// UpdateVlan renames a VLAN. The vid and site are immutable parts of the
// identity and are never patched.
func (a *Adapter) UpdateVlan(ctx context.Context, vlan *inventory.Vlan, attrs inventory.VlanAttrs) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if vlan.Attrs.Equal(attrs) {
		return unchanged()
	}
	if !vlan.RemoteID.Valid() {
		return failed(fmt.Errorf("vlan %s has no remote id, cannot update", vlan.UID()))
	}

	name := attrs.Name
	if name == "" {
		name = inventory.DefaultVlanName(vlan.ID.VID)
	}
	if _, err := a.client.Vlans().Update(ctx, vlan.RemoteID.Int64(), netbox.Params{"name": name}); err != nil {
		return failed(fmt.Errorf("failed to update vlan %s: %w", vlan.UID(), err))
	}

	vlan.Attrs = attrs
	a.log.Info("Updated vlan",
		zap.String("site", vlan.ID.SiteName),
		zap.Int("vid", vlan.ID.VID),
		zap.String("name", name))
	return applied()
}
