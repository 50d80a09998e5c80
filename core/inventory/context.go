package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"netbox-importer/core/netbox"

	"go.uber.org/zap"
)

// Context is the registry of all entities for one reconciliation run.
// Every cross-entity reference is resolved through it, which makes it the
// single enforcement point for the no-duplicate-identity invariant and the
// place where remote ids and connected-endpoint markers become visible to
// subsequent operations in the same run.
type Context struct {
	name   string
	client netbox.Client
	log    *zap.Logger

	mu       sync.RWMutex
	entities map[Kind]map[string]Entity
}

// NewContext creates an empty registry. The client may be nil when no
// remote fallback lookups are needed (e.g. for a desired-state snapshot).
func NewContext(name string, client netbox.Client, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		name:     name,
		client:   client,
		log:      log,
		entities: make(map[Kind]map[string]Entity),
	}
}

// Name returns the label of this registry, used in log messages.
func (c *Context) Name() string { return c.name }

// Add registers an entity, failing when the identity is already taken.
func (c *Context) Add(e Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	byUID := c.entities[e.Kind()]
	if byUID == nil {
		byUID = make(map[string]Entity)
		c.entities[e.Kind()] = byUID
	}
	uid := e.UID()
	if _, exists := byUID[uid]; exists {
		return fmt.Errorf("duplicate %s identity %q in %s", e.Kind(), uid, c.name)
	}
	byUID[uid] = e
	return nil
}

// Get returns the entity of the given kind and identity, if registered.
func (c *Context) Get(kind Kind, uid string) (Entity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entities[kind][uid]
	return e, ok
}

// Remove drops the entity from the registry's bookkeeping. The in-memory
// entity may still be referenced transiently by the caller.
func (c *Context) Remove(kind Kind, uid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entities[kind], uid)
}

// UIDs returns the sorted identities of all entities of one kind.
func (c *Context) UIDs(kind Kind) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	uids := make([]string, 0, len(c.entities[kind]))
	for uid := range c.entities[kind] {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}

// Site returns the site with the given name, or nil.
func (c *Context) Site(name string) *Site {
	if e, ok := c.Get(KindSite, name); ok {
		return e.(*Site)
	}
	return nil
}

// Device returns the device with the given name, or nil.
func (c *Context) Device(name string) *Device {
	if e, ok := c.Get(KindDevice, name); ok {
		return e.(*Device)
	}
	return nil
}

// Interface returns the interface with the given identity, or nil.
func (c *Context) Interface(deviceName, name string) *Interface {
	return c.InterfaceByUID(InterfaceID{DeviceName: deviceName, Name: name}.UID())
}

// InterfaceByUID returns the interface with the given unique id, or nil.
func (c *Context) InterfaceByUID(uid string) *Interface {
	if e, ok := c.Get(KindInterface, uid); ok {
		return e.(*Interface)
	}
	return nil
}

// IPAddress returns the address entity for the given address, or nil.
func (c *Context) IPAddress(address string) *IPAddress {
	if e, ok := c.Get(KindIPAddress, address); ok {
		return e.(*IPAddress)
	}
	return nil
}

// Prefix returns the prefix with the given identity, or nil.
func (c *Context) Prefix(siteName, prefix string) *Prefix {
	if e, ok := c.Get(KindPrefix, PrefixID{SiteName: siteName, Prefix: prefix}.UID()); ok {
		return e.(*Prefix)
	}
	return nil
}

// Vlan returns the VLAN with the given site and vid, or nil.
func (c *Context) Vlan(siteName string, vid int) *Vlan {
	return c.VlanByUID(VlanID{SiteName: siteName, VID: vid}.UID())
}

// VlanByUID returns the VLAN with the given unique id, or nil.
func (c *Context) VlanByUID(uid string) *Vlan {
	if e, ok := c.Get(KindVlan, uid); ok {
		return e.(*Vlan)
	}
	return nil
}

// Cable returns the cable with the given identity, or nil.
func (c *Context) Cable(id CableID) *Cable {
	if e, ok := c.Get(KindCable, id.UID()); ok {
		return e.(*Cable)
	}
	return nil
}

// InterfaceFromRemote resolves an interface directly from NetBox when it is
// not in the local cache, covering endpoints created in a prior run. The
// resolved interface is registered so later lookups in the same run hit the
// cache. Returns nil when the remote has no such interface.
func (c *Context) InterfaceFromRemote(ctx context.Context, deviceName, name string) (*Interface, error) {
	if c.client == nil {
		return nil, nil
	}

	obj, err := c.client.Interfaces().Find(ctx, deviceName, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interface %s %s in netbox: %w", deviceName, name, err)
	}
	if obj == nil {
		return nil, nil
	}

	intf := &Interface{
		ID:                    InterfaceID{DeviceName: deviceName, Name: name},
		RemoteID:              NewRemoteID(obj.ID),
		ConnectedEndpointType: obj.ConnectedEndpointType,
	}
	if err := c.Add(intf); err != nil {
		// Raced with a concurrent resolution of the same endpoint; the
		// registered entity wins.
		return c.Interface(deviceName, name), nil
	}
	c.log.Debug("Resolved interface from NetBox",
		zap.String("device", deviceName),
		zap.String("interface", name),
		zap.Int64("remote_id", obj.ID))
	return intf, nil
}
