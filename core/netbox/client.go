package netbox

import "context"

// Params carries the call parameters for a create or update request.
// A key present with a nil value is serialized as an explicit JSON null,
// which NetBox interprets as "clear this field". A key that is absent
// leaves the remote field untouched.
type Params map[string]any

// Object is the subset of a NetBox object the importer cares about.
// Only the fields relevant to the synced resource types are mapped.
type Object struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
	VID     int    `json:"vid,omitempty"`
	// ConnectedEndpointType is non-empty when an interface already
	// terminates a cable.
	ConnectedEndpointType string `json:"connected_endpoint_type,omitempty"`
}

// Resource is the CRUD contract shared by all NetBox resource types.
type Resource interface {
	// Create creates a new object and returns it with its id assigned.
	Create(ctx context.Context, params Params) (*Object, error)
	// Get fetches an object by id.
	Get(ctx context.Context, id int64) (*Object, error)
	// Update applies a partial update to the object with the given id.
	Update(ctx context.Context, id int64, data Params) (*Object, error)
	// Delete removes the object with the given id.
	Delete(ctx context.Context, id int64) error
}

// InterfaceResource extends Resource with a device-scoped name lookup,
// needed when a cable endpoint was created in a prior run and is not in
// the local cache.
type InterfaceResource interface {
	Resource
	// Find returns the interface with the given name on the given device,
	// or nil when no such interface exists remotely.
	Find(ctx context.Context, deviceName, name string) (*Object, error)
}

// Client groups the per-resource endpoints of one NetBox instance.
type Client interface {
	Sites() Resource
	Devices() Resource
	Interfaces() InterfaceResource
	IPAddresses() Resource
	Prefixes() Resource
	Vlans() Resource
	Cables() Resource
}
