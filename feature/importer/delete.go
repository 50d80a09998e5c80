package importer

import (
	"context"
	"fmt"

	"netbox-importer/core/inventory"

	"go.uber.org/zap"
)

// DeleteInterface removes an interface from NetBox and the context. An
// interface carrying its device's management address is protected and the
// intent is skipped, leaving the interface registered.
func (a *Adapter) DeleteInterface(ctx context.Context, intf *inventory.Interface) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(intf.IPs) > 0 {
		device := a.inv.Device(intf.ID.DeviceName)
		if device != nil && device.PrimaryIP != "" && intf.HasIP(device.PrimaryIP) {
			a.log.Warn("Interface carries the management address, refusing to delete",
				zap.String("device", intf.ID.DeviceName),
				zap.String("interface", intf.ID.Name),
				zap.String("primary_ip", device.PrimaryIP))
			return skipped(fmt.Sprintf("interface %s carries the management address", intf.UID()))
		}
	}
	if !intf.RemoteID.Valid() {
		return failed(fmt.Errorf("interface %s has no remote id, cannot delete", intf.UID()))
	}

	if err := a.client.Interfaces().Delete(ctx, intf.RemoteID.Int64()); err != nil {
		return failed(fmt.Errorf("failed to delete interface %s: %w", intf.UID(), err))
	}
	a.inv.Remove(inventory.KindInterface, intf.UID())
	a.log.Info("Deleted interface",
		zap.String("device", intf.ID.DeviceName),
		zap.String("interface", intf.ID.Name))
	return applied()
}

// DeleteIPAddress removes an address. The management address of its device
// is protected.
func (a *Adapter) DeleteIPAddress(ctx context.Context, ip *inventory.IPAddress) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ip.Attrs.DeviceName != "" {
		device := a.inv.Device(ip.Attrs.DeviceName)
		if device != nil && device.PrimaryIP == ip.ID.Address {
			a.log.Warn("Address is the device management address, refusing to delete",
				zap.String("address", ip.ID.Address),
				zap.String("device", ip.Attrs.DeviceName))
			return skipped(fmt.Sprintf("address %s is the management address of %s", ip.ID.Address, ip.Attrs.DeviceName))
		}
	}
	if !ip.RemoteID.Valid() {
		return failed(fmt.Errorf("ip address %s has no remote id, cannot delete", ip.UID()))
	}

	if err := a.client.IPAddresses().Delete(ctx, ip.RemoteID.Int64()); err != nil {
		return failed(fmt.Errorf("failed to delete ip address %s: %w", ip.UID(), err))
	}
	a.inv.Remove(inventory.KindIPAddress, ip.UID())
	if intf := a.inv.Interface(ip.Attrs.DeviceName, ip.Attrs.InterfaceName); intf != nil {
		intf.IPs = removeString(intf.IPs, ip.ID.Address)
	}
	a.log.Info("Deleted ip address", zap.String("address", ip.ID.Address))
	return applied()
}

// DeleteCable removes a cable and clears the connected markers on both
// endpoints so they can be re-cabled in the same run.
func (a *Adapter) DeleteCable(ctx context.Context, cable *inventory.Cable) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !cable.RemoteID.Valid() {
		return failed(fmt.Errorf("cable %s has no remote id, cannot delete", cable.UID()))
	}
	if err := a.client.Cables().Delete(ctx, cable.RemoteID.Int64()); err != nil {
		return failed(fmt.Errorf("failed to delete cable %s: %w", cable.UID(), err))
	}
	a.inv.Remove(inventory.KindCable, cable.UID())
	for _, side := range []inventory.InterfaceID{cable.ID.SideA(), cable.ID.SideZ()} {
		if intf := a.inv.Interface(side.DeviceName, side.Name); intf != nil {
			intf.ConnectedEndpointType = ""
		}
	}
	a.log.Info("Deleted cable", zap.String("cable", cable.UID()))
	return applied()
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
