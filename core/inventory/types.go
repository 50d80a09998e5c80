package inventory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind names one of the entity types held by a Context.
type Kind string

const (
	KindSite      Kind = "site"
	KindDevice    Kind = "device"
	KindInterface Kind = "interface"
	KindIPAddress Kind = "ip_address"
	KindPrefix    Kind = "prefix"
	KindVlan      Kind = "vlan"
	KindCable     Kind = "cable"
)

// uidSep joins identity fields into a unique id.
const uidSep = "__"

// RemoteID is the opaque handle NetBox assigns to an object on creation.
// The zero value means the entity has not been materialized remotely yet.
type RemoteID struct {
	id    int64
	valid bool
}

// NewRemoteID returns a materialized remote id.
func NewRemoteID(id int64) RemoteID {
	return RemoteID{id: id, valid: true}
}

// Valid reports whether the remote id has been assigned.
func (r RemoteID) Valid() bool { return r.valid }

// Int64 returns the raw id. It is only meaningful when Valid is true.
func (r RemoteID) Int64() int64 { return r.id }

func (r RemoteID) String() string {
	if !r.valid {
		return "unset"
	}
	return strconv.FormatInt(r.id, 10)
}

// MarshalJSON encodes an unassigned id as null so snapshots round-trip.
func (r RemoteID) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *RemoteID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RemoteID{}
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*r = NewRemoteID(id)
	return nil
}

// Entity is implemented by every inventory object.
type Entity interface {
	// UID returns the unique identity of the entity within one run.
	UID() string
	// Kind returns the entity type.
	Kind() Kind
}

// Site is a physical location devices belong to.
type Site struct {
	Name     string   `json:"name"`
	RemoteID RemoteID `json:"remote_id"`
}

func (s *Site) UID() string { return s.Name }
func (s *Site) Kind() Kind  { return KindSite }

// Device is a network device. PrimaryIP holds the management address,
// matched by value against the device's IP addresses.
type Device struct {
	Name      string   `json:"name"`
	PrimaryIP string   `json:"primary_ip,omitempty"`
	RemoteID  RemoteID `json:"remote_id"`
}

func (d *Device) UID() string { return d.Name }
func (d *Device) Kind() Kind  { return KindDevice }

// InterfaceID identifies an interface by its owning device and name.
type InterfaceID struct {
	DeviceName string `json:"device_name"`
	Name       string `json:"name"`
}

func (id InterfaceID) UID() string {
	return id.DeviceName + uidSep + id.Name
}

// InterfaceAttrs is the mutable attribute set of an interface. Pointer
// fields distinguish "absent, do not touch" from an explicit value.
type InterfaceAttrs struct {
	Description *string `json:"description,omitempty"`
	MTU         *int    `json:"mtu,omitempty"`
	Speed       *int64  `json:"speed,omitempty"`
	// Mode is the configured interface mode (ACCESS, TRUNK, L3_SUB_VLAN).
	Mode string `json:"mode,omitempty"`
	// SwitchportMode is the switchport operating mode (ACCESS, TRUNK, NONE).
	SwitchportMode string `json:"switchport_mode,omitempty"`
	IsLag          bool   `json:"is_lag,omitempty"`
	IsVirtual      bool   `json:"is_virtual,omitempty"`
	// IsLagMember is tri-state: nil leaves LAG membership untouched,
	// false explicitly clears it.
	IsLagMember *bool `json:"is_lag_member,omitempty"`
	// Parent is the UID of the parent LAG interface.
	Parent string `json:"parent,omitempty"`
	// AccessVlan is the UID of the untagged VLAN.
	AccessVlan string `json:"access_vlan,omitempty"`
	// AllowedVlans are the UIDs of the tagged VLANs.
	AllowedVlans []string `json:"allowed_vlans,omitempty"`
}

// Equal reports whether both attribute sets are exactly identical,
// including the present/absent state of optional fields.
func (a InterfaceAttrs) Equal(b InterfaceAttrs) bool {
	if !eqStrPtr(a.Description, b.Description) ||
		!eqIntPtr(a.MTU, b.MTU) ||
		!eqInt64Ptr(a.Speed, b.Speed) ||
		!eqBoolPtr(a.IsLagMember, b.IsLagMember) {
		return false
	}
	if a.Mode != b.Mode || a.SwitchportMode != b.SwitchportMode ||
		a.IsLag != b.IsLag || a.IsVirtual != b.IsVirtual ||
		a.Parent != b.Parent || a.AccessVlan != b.AccessVlan {
		return false
	}
	if len(a.AllowedVlans) != len(b.AllowedVlans) {
		return false
	}
	for i := range a.AllowedVlans {
		if a.AllowedVlans[i] != b.AllowedVlans[i] {
			return false
		}
	}
	return true
}

// Interface is a physical or logical port on a device.
type Interface struct {
	ID    InterfaceID    `json:"id"`
	Attrs InterfaceAttrs `json:"attrs"`
	// IPs are the addresses bound to this interface.
	IPs      []string `json:"ips,omitempty"`
	RemoteID RemoteID `json:"remote_id"`
	// ConnectedEndpointType is non-empty once a cable terminates here.
	ConnectedEndpointType string `json:"connected_endpoint_type,omitempty"`
}

func (i *Interface) UID() string { return i.ID.UID() }
func (i *Interface) Kind() Kind  { return KindInterface }

// HasIP reports whether the interface carries the given address.
func (i *Interface) HasIP(address string) bool {
	for _, ip := range i.IPs {
		if ip == address {
			return true
		}
	}
	return false
}

// IPAddressID identifies an IP address by value.
type IPAddressID struct {
	Address string `json:"address"`
}

func (id IPAddressID) UID() string { return id.Address }

// IPAddressAttrs carries the optional attachment of an address to an
// interface.
type IPAddressAttrs struct {
	DeviceName    string `json:"device_name,omitempty"`
	InterfaceName string `json:"interface_name,omitempty"`
}

func (a IPAddressAttrs) Equal(b IPAddressAttrs) bool { return a == b }

// IPAddress is an address, optionally attached to a device interface.
type IPAddress struct {
	ID       IPAddressID    `json:"id"`
	Attrs    IPAddressAttrs `json:"attrs"`
	RemoteID RemoteID       `json:"remote_id"`
}

func (ip *IPAddress) UID() string { return ip.ID.UID() }
func (ip *IPAddress) Kind() Kind  { return KindIPAddress }

// PrefixID identifies a prefix within a site.
type PrefixID struct {
	SiteName string `json:"site_name"`
	Prefix   string `json:"prefix"`
}

func (id PrefixID) UID() string { return id.SiteName + uidSep + id.Prefix }

// PrefixAttrs carries the optional VLAN association of a prefix.
type PrefixAttrs struct {
	VlanUID string `json:"vlan,omitempty"`
}

func (a PrefixAttrs) Equal(b PrefixAttrs) bool { return a == b }

// Prefix is an IP prefix scoped to a site.
type Prefix struct {
	ID       PrefixID    `json:"id"`
	Attrs    PrefixAttrs `json:"attrs"`
	RemoteID RemoteID    `json:"remote_id"`
}

func (p *Prefix) UID() string { return p.ID.UID() }
func (p *Prefix) Kind() Kind  { return KindPrefix }

// VlanID identifies a VLAN by site and 802.1Q id.
type VlanID struct {
	SiteName string `json:"site_name"`
	VID      int    `json:"vid"`
}

func (id VlanID) UID() string {
	return id.SiteName + uidSep + strconv.Itoa(id.VID)
}

// VlanAttrs holds the mutable VLAN fields. Only the name is mutable after
// creation.
type VlanAttrs struct {
	Name string `json:"name,omitempty"`
}

func (a VlanAttrs) Equal(b VlanAttrs) bool { return a == b }

// Vlan is an 802.1Q VLAN scoped to a site.
type Vlan struct {
	ID       VlanID    `json:"id"`
	Attrs    VlanAttrs `json:"attrs"`
	RemoteID RemoteID  `json:"remote_id"`
}

func (v *Vlan) UID() string { return v.ID.UID() }
func (v *Vlan) Kind() Kind  { return KindVlan }

// EffectiveName returns the configured name, defaulting to "vlan-<vid>".
// The default is deterministic so repeated runs stay idempotent.
func (v *Vlan) EffectiveName() string {
	if v.Attrs.Name != "" {
		return v.Attrs.Name
	}
	return DefaultVlanName(v.ID.VID)
}

// DefaultVlanName returns the deterministic name for an unnamed VLAN.
func DefaultVlanName(vid int) string {
	return fmt.Sprintf("vlan-%d", vid)
}

// CableID identifies a cable by its two (device, interface) endpoints.
// Endpoints are normalized to lexicographic order so the identity does not
// depend on which side was discovered first.
type CableID struct {
	DeviceA    string `json:"device_a"`
	InterfaceA string `json:"interface_a"`
	DeviceZ    string `json:"device_z"`
	InterfaceZ string `json:"interface_z"`
}

// NewCableID builds a normalized cable identity.
func NewCableID(deviceA, interfaceA, deviceZ, interfaceZ string) CableID {
	if deviceZ < deviceA || (deviceZ == deviceA && interfaceZ < interfaceA) {
		deviceA, deviceZ = deviceZ, deviceA
		interfaceA, interfaceZ = interfaceZ, interfaceA
	}
	return CableID{
		DeviceA:    deviceA,
		InterfaceA: interfaceA,
		DeviceZ:    deviceZ,
		InterfaceZ: interfaceZ,
	}
}

func (id CableID) UID() string {
	return strings.Join([]string{id.DeviceA, id.InterfaceA, id.DeviceZ, id.InterfaceZ}, uidSep)
}

// SideA returns the (device, interface) identity of the A endpoint.
func (id CableID) SideA() InterfaceID {
	return InterfaceID{DeviceName: id.DeviceA, Name: id.InterfaceA}
}

// SideZ returns the (device, interface) identity of the Z endpoint.
func (id CableID) SideZ() InterfaceID {
	return InterfaceID{DeviceName: id.DeviceZ, Name: id.InterfaceZ}
}

// Cable is a physical connection between two device interfaces.
type Cable struct {
	ID           CableID  `json:"id"`
	RemoteID     RemoteID `json:"remote_id"`
	TerminationA RemoteID `json:"termination_a"`
	TerminationZ RemoteID `json:"termination_z"`
}

func (c *Cable) UID() string { return c.ID.UID() }
func (c *Cable) Kind() Kind  { return KindCable }

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
