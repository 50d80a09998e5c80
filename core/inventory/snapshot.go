package inventory

import (
	"encoding/json"
	"fmt"
	"io"
)

// Snapshot is the serializable form of a Context, used for desired-state
// input files and for archiving a run's inventory.
type Snapshot struct {
	Name        string       `json:"name"`
	Sites       []*Site      `json:"sites,omitempty"`
	Devices     []*Device    `json:"devices,omitempty"`
	Interfaces  []*Interface `json:"interfaces,omitempty"`
	IPAddresses []*IPAddress `json:"ip_addresses,omitempty"`
	Prefixes    []*Prefix    `json:"prefixes,omitempty"`
	Vlans       []*Vlan      `json:"vlans,omitempty"`
	Cables      []*Cable     `json:"cables,omitempty"`
}

// Export captures the current registry content in deterministic order.
func (c *Context) Export() *Snapshot {
	snap := &Snapshot{Name: c.name}

	for _, uid := range c.UIDs(KindSite) {
		snap.Sites = append(snap.Sites, c.Site(uid))
	}
	for _, uid := range c.UIDs(KindDevice) {
		snap.Devices = append(snap.Devices, c.Device(uid))
	}
	for _, uid := range c.UIDs(KindInterface) {
		snap.Interfaces = append(snap.Interfaces, c.InterfaceByUID(uid))
	}
	for _, uid := range c.UIDs(KindIPAddress) {
		snap.IPAddresses = append(snap.IPAddresses, c.IPAddress(uid))
	}
	for _, uid := range c.UIDs(KindPrefix) {
		if e, ok := c.Get(KindPrefix, uid); ok {
			snap.Prefixes = append(snap.Prefixes, e.(*Prefix))
		}
	}
	for _, uid := range c.UIDs(KindVlan) {
		snap.Vlans = append(snap.Vlans, c.VlanByUID(uid))
	}
	for _, uid := range c.UIDs(KindCable) {
		if e, ok := c.Get(KindCable, uid); ok {
			snap.Cables = append(snap.Cables, e.(*Cable))
		}
	}
	return snap
}

// Load registers all snapshot entities into the registry.
func (c *Context) Load(snap *Snapshot) error {
	for _, s := range snap.Sites {
		if err := c.Add(s); err != nil {
			return err
		}
	}
	for _, d := range snap.Devices {
		if err := c.Add(d); err != nil {
			return err
		}
	}
	for _, i := range snap.Interfaces {
		if err := c.Add(i); err != nil {
			return err
		}
	}
	for _, ip := range snap.IPAddresses {
		if err := c.Add(ip); err != nil {
			return err
		}
	}
	for _, p := range snap.Prefixes {
		if err := c.Add(p); err != nil {
			return err
		}
	}
	for _, v := range snap.Vlans {
		if err := c.Add(v); err != nil {
			return err
		}
	}
	for _, cb := range snap.Cables {
		if err := c.Add(cb); err != nil {
			return err
		}
	}
	return nil
}

// ReadSnapshot decodes a snapshot from JSON.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// WriteSnapshot encodes a snapshot as indented JSON.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
