package importer

import (
	"context"
	"fmt"

	"netbox-importer/core/inventory"
	"netbox-importer/core/netbox"

	"go.uber.org/zap"
)

// CreateInterface materializes an interface in NetBox and registers it in
// the adapter context with its assigned remote id.
func (a *Adapter) CreateInterface(ctx context.Context, id inventory.InterfaceID, attrs inventory.InterfaceAttrs) (*inventory.Interface, Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	params, err := a.translateInterfaceAttrs(id, attrs)
	if err != nil {
		return nil, failed(err)
	}

	obj, err := a.client.Interfaces().Create(ctx, params)
	if err != nil {
		return nil, failed(fmt.Errorf("failed to create interface %s: %w", id.UID(), err))
	}

	intf := &inventory.Interface{
		ID:       id,
		Attrs:    attrs,
		RemoteID: inventory.NewRemoteID(obj.ID),
	}
	if err := a.inv.Add(intf); err != nil {
		return nil, failed(err)
	}
	a.log.Debug("Created interface",
		zap.String("device", id.DeviceName),
		zap.String("interface", id.Name),
		zap.Int64("remote_id", obj.ID))
	return intf, applied()
}

// CreateIPAddress materializes an address. The interface attachment is best
// effort: an address whose interface is unknown is still created, just
// unattached.
func (a *Adapter) CreateIPAddress(ctx context.Context, id inventory.IPAddressID, attrs inventory.IPAddressAttrs) (*inventory.IPAddress, Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	params := netbox.Params{"address": id.Address}

	var intf *inventory.Interface
	if attrs.DeviceName != "" && attrs.InterfaceName != "" {
		intf = a.inv.Interface(attrs.DeviceName, attrs.InterfaceName)
		if intf != nil && intf.RemoteID.Valid() {
			params["interface"] = intf.RemoteID.Int64()
		}
	}

	obj, err := a.client.IPAddresses().Create(ctx, params)
	if err != nil {
		return nil, failed(fmt.Errorf("failed to create ip address %s: %w", id.Address, err))
	}

	ip := &inventory.IPAddress{
		ID:       id,
		Attrs:    attrs,
		RemoteID: inventory.NewRemoteID(obj.ID),
	}
	if err := a.inv.Add(ip); err != nil {
		return nil, failed(err)
	}
	if intf != nil && !intf.HasIP(id.Address) {
		intf.IPs = append(intf.IPs, id.Address)
	}
	a.log.Debug("Created ip address",
		zap.String("address", id.Address),
		zap.Int64("remote_id", obj.ID))
	return ip, applied()
}

// CreatePrefix materializes a prefix scoped to its site.
func (a *Adapter) CreatePrefix(ctx context.Context, id inventory.PrefixID, attrs inventory.PrefixAttrs) (*inventory.Prefix, Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	site := a.inv.Site(id.SiteName)
	if site == nil || !site.RemoteID.Valid() {
		return nil, failed(fmt.Errorf("site %q is not resolved in %s, prefix %s arrived out of order",
			id.SiteName, a.inv.Name(), id.Prefix))
	}

	params := netbox.Params{
		"prefix": id.Prefix,
		"site":   site.RemoteID.Int64(),
		"status": "active",
	}
	if attrs.VlanUID != "" {
		if vlan := a.inv.VlanByUID(attrs.VlanUID); vlan != nil && vlan.RemoteID.Valid() {
			params["vlan"] = vlan.RemoteID.Int64()
		}
	}

	obj, err := a.client.Prefixes().Create(ctx, params)
	if err != nil {
		return nil, failed(fmt.Errorf("failed to create prefix %s: %w", id.UID(), err))
	}

	prefix := &inventory.Prefix{
		ID:       id,
		Attrs:    attrs,
		RemoteID: inventory.NewRemoteID(obj.ID),
	}
	if err := a.inv.Add(prefix); err != nil {
		return nil, failed(err)
	}
	a.log.Debug("Created prefix",
		zap.String("site", id.SiteName),
		zap.String("prefix", id.Prefix),
		zap.Int64("remote_id", obj.ID))
	return prefix, applied()
}

// CreateVlan materializes a VLAN. NetBox rejects a duplicate (site, vid)
// pair with a validation error; that is an expected conflict and is
// absorbed as a skip so dependent interfaces keep applying.
func (a *Adapter) CreateVlan(ctx context.Context, id inventory.VlanID, attrs inventory.VlanAttrs) (*inventory.Vlan, Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	site := a.inv.Site(id.SiteName)
	if site == nil || !site.RemoteID.Valid() {
		return nil, failed(fmt.Errorf("site %q is not resolved in %s, vlan %d arrived out of order",
			id.SiteName, a.inv.Name(), id.VID))
	}

	name := attrs.Name
	if name == "" {
		name = inventory.DefaultVlanName(id.VID)
	}
	params := netbox.Params{
		"vid":  id.VID,
		"name": name,
		"site": site.RemoteID.Int64(),
	}

	obj, err := a.client.Vlans().Create(ctx, params)
	if err != nil {
		if netbox.IsRequestError(err) {
			a.log.Warn("NetBox rejected vlan creation",
				zap.String("site", id.SiteName),
				zap.Int("vid", id.VID),
				zap.Error(err))
			return nil, skipped(fmt.Sprintf("vlan %d rejected by netbox: %v", id.VID, err))
		}
		return nil, failed(fmt.Errorf("failed to create vlan %s: %w", id.UID(), err))
	}

	vlan := &inventory.Vlan{
		ID:       id,
		Attrs:    attrs,
		RemoteID: inventory.NewRemoteID(obj.ID),
	}
	if err := a.inv.Add(vlan); err != nil {
		return nil, failed(err)
	}
	a.log.Debug("Created vlan",
		zap.String("site", id.SiteName),
		zap.Int("vid", id.VID),
		zap.Int64("remote_id", obj.ID))
	return vlan, applied()
}

// CreateCable materializes a cable between two interfaces. Both endpoints
// are resolved independently, from the context first and from NetBox as a
// fallback. An endpoint that cannot be resolved, or that already terminates
// a cable, skips the whole intent without touching the remote.
func (a *Adapter) CreateCable(ctx context.Context, id inventory.CableID) (*inventory.Cable, Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sideA, outcome := a.resolveEndpoint(ctx, id.SideA())
	if outcome != nil {
		return nil, *outcome
	}
	sideZ, outcome := a.resolveEndpoint(ctx, id.SideZ())
	if outcome != nil {
		return nil, *outcome
	}

	if sideA.ConnectedEndpointType != "" {
		return nil, a.skipConnected(id, sideA)
	}
	if sideZ.ConnectedEndpointType != "" {
		return nil, a.skipConnected(id, sideZ)
	}

	params := netbox.Params{
		"termination_a_type": connectedEndpointInterface,
		"termination_a_id":   sideA.RemoteID.Int64(),
		"termination_b_type": connectedEndpointInterface,
		"termination_b_id":   sideZ.RemoteID.Int64(),
	}
	obj, err := a.client.Cables().Create(ctx, params)
	if err != nil {
		if netbox.IsRequestError(err) {
			a.log.Warn("NetBox rejected cable creation",
				zap.String("cable", id.UID()),
				zap.Error(err))
			return nil, skipped(fmt.Sprintf("cable %s rejected by netbox: %v", id.UID(), err))
		}
		return nil, failed(fmt.Errorf("failed to create cable %s: %w", id.UID(), err))
	}

	sideA.ConnectedEndpointType = connectedEndpointInterface
	sideZ.ConnectedEndpointType = connectedEndpointInterface

	cable := &inventory.Cable{
		ID:           id,
		RemoteID:     inventory.NewRemoteID(obj.ID),
		TerminationA: sideA.RemoteID,
		TerminationZ: sideZ.RemoteID,
	}
	if err := a.inv.Add(cable); err != nil {
		return nil, failed(err)
	}
	a.log.Info("Created cable",
		zap.String("cable", id.UID()),
		zap.Int64("remote_id", obj.ID))
	return cable, applied()
}

// resolveEndpoint returns a cable endpoint with a materialized remote id,
// or the Outcome that ends the cable intent.
func (a *Adapter) resolveEndpoint(ctx context.Context, id inventory.InterfaceID) (*inventory.Interface, *Outcome) {
	intf := a.inv.Interface(id.DeviceName, id.Name)
	if intf == nil {
		remote, err := a.inv.InterfaceFromRemote(ctx, id.DeviceName, id.Name)
		if err != nil {
			out := failed(err)
			return nil, &out
		}
		intf = remote
	}
	if intf == nil || !intf.RemoteID.Valid() {
		a.log.Info("Cable endpoint not resolvable, skipping cable",
			zap.String("device", id.DeviceName),
			zap.String("interface", id.Name))
		out := skipped(fmt.Sprintf("endpoint %s has no remote interface", id.UID()))
		return nil, &out
	}
	return intf, nil
}

func (a *Adapter) skipConnected(id inventory.CableID, endpoint *inventory.Interface) Outcome {
	a.log.Info("Cable endpoint already connected, skipping cable",
		zap.String("cable", id.UID()),
		zap.String("endpoint", endpoint.UID()))
	return skipped(fmt.Sprintf("endpoint %s is already connected", endpoint.UID()))
}
