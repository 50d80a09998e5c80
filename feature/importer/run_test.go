package importer

import (
	"context"
	"testing"

	"netbox-importer/core/diff"
	"netbox-importer/core/inventory"
	"netbox-importer/core/netbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyPlan_CreatesFullTopology(t *testing.T) {
	desired := inventory.NewContext("local", nil, nil)
	require.NoError(t, desired.Add(&inventory.Vlan{ID: inventory.VlanID{SiteName: "nyc", VID: 10}}))
	require.NoError(t, desired.Add(&inventory.Prefix{
		ID:    inventory.PrefixID{SiteName: "nyc", Prefix: "10.0.0.0/24"},
		Attrs: inventory.PrefixAttrs{VlanUID: "nyc__10"},
	}))
	require.NoError(t, desired.Add(&inventory.Interface{
		ID:    inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
		Attrs: inventory.InterfaceAttrs{Mode: "ACCESS", AccessVlan: "nyc__10"},
	}))
	require.NoError(t, desired.Add(&inventory.Interface{
		ID: inventory.InterfaceID{DeviceName: "sw2", Name: "ge-0/0/0"},
	}))
	require.NoError(t, desired.Add(&inventory.IPAddress{
		ID:    inventory.IPAddressID{Address: "10.0.0.1/24"},
		Attrs: inventory.IPAddressAttrs{DeviceName: "sw1", InterfaceName: "ge-0/0/0"},
	}))
	require.NoError(t, desired.Add(&inventory.Cable{
		ID: inventory.NewCableID("sw1", "ge-0/0/0", "sw2", "ge-0/0/0"),
	}))

	adapter, client := newTestAdapter(t, Config{ImportVlans: ImportVlansConfig},
		seedSite("nyc", 3), seedDevice("sw1", 7), seedDevice("sw2", 8))
	var nextID int64
	newObject := func() *netbox.Object {
		nextID++
		return &netbox.Object{ID: nextID}
	}
	client.VlansMock.On("Create", mock.Anything, mock.Anything).Return(newObject(), nil)
	client.PrefixesMock.On("Create", mock.Anything, mock.Anything).Return(newObject(), nil)
	client.InterfacesMock.On("Create", mock.Anything, mock.Anything).Return(newObject(), nil)
	client.IPAddressesMock.On("Create", mock.Anything, mock.Anything).Return(newObject(), nil)
	client.CablesMock.On("Create", mock.Anything, mock.Anything).Return(newObject(), nil)

	plan := diff.Calculate(desired, adapter.Inventory())
	require.Equal(t, 6, plan.Len())

	summary, err := adapter.ApplyPlan(context.Background(), plan, desired)
	require.NoError(t, err)
	assert.Equal(t, Summary{Applied: 6}, summary)

	// Everything the plan created is now registered with a remote id.
	intf := adapter.Inventory().Interface("sw1", "ge-0/0/0")
	require.NotNil(t, intf)
	assert.True(t, intf.RemoteID.Valid())
	assert.Equal(t, "dcim.interface", intf.ConnectedEndpointType)
	require.NotNil(t, adapter.Inventory().Vlan("nyc", 10))
	require.NotNil(t, adapter.Inventory().IPAddress("10.0.0.1/24"))
}

func TestApplyPlan_SkipsAreCountedAndExecutionContinues(t *testing.T) {
	desired := inventory.NewContext("local", nil, nil)
	require.NoError(t, desired.Add(&inventory.Vlan{ID: inventory.VlanID{SiteName: "nyc", VID: 10}}))
	require.NoError(t, desired.Add(&inventory.Interface{
		ID: inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
	}))

	adapter, client := newTestAdapter(t, Config{}, seedSite("nyc", 3), seedDevice("sw1", 7))
	client.VlansMock.On("Create", mock.Anything, mock.Anything).
		Return(nil, &netbox.RequestError{StatusCode: 400, Detail: "vid already exists"})
	client.InterfacesMock.On("Create", mock.Anything, mock.Anything).
		Return(&netbox.Object{ID: 42}, nil)

	plan := diff.Calculate(desired, adapter.Inventory())
	summary, err := adapter.ApplyPlan(context.Background(), plan, desired)

	require.NoError(t, err)
	assert.Equal(t, Summary{Applied: 1, Skipped: 1}, summary)
	assert.NotNil(t, adapter.Inventory().Interface("sw1", "ge-0/0/0"))
}

func TestApplyPlan_AbortsOnFirstFailure(t *testing.T) {
	desired := inventory.NewContext("local", nil, nil)
	require.NoError(t, desired.Add(&inventory.Interface{
		ID: inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
	}))
	require.NoError(t, desired.Add(&inventory.IPAddress{
		ID: inventory.IPAddressID{Address: "10.0.0.1/24"},
	}))

	adapter, client := newTestAdapter(t, Config{}, seedDevice("sw1", 7))
	client.InterfacesMock.On("Create", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	plan := diff.Calculate(desired, adapter.Inventory())
	summary, err := adapter.ApplyPlan(context.Background(), plan, desired)

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, Summary{Failed: 1}, summary)
	client.IPAddressesMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplyPlan_Idempotent(t *testing.T) {
	attrs := inventory.InterfaceAttrs{Mode: "ACCESS"}
	desired := inventory.NewContext("local", nil, nil)
	require.NoError(t, desired.Add(&inventory.Interface{
		ID:    inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
		Attrs: attrs,
	}))

	adapter, client := newTestAdapter(t, Config{}, seedDevice("sw1", 7))
	client.InterfacesMock.On("Create", mock.Anything, mock.Anything).
		Return(&netbox.Object{ID: 42}, nil).Once()

	first := diff.Calculate(desired, adapter.Inventory())
	_, err := adapter.ApplyPlan(context.Background(), first, desired)
	require.NoError(t, err)

	// A second pass over the same desired state finds nothing to do.
	second := diff.Calculate(desired, adapter.Inventory())
	assert.Zero(t, second.Len())
	client.InterfacesMock.AssertExpectations(t)
}
