package importer

import (
	"context"
	"testing"

	"netbox-importer/core/inventory"
	"netbox-importer/core/netbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateInterface_NoChangesSkipsRemoteCall(t *testing.T) {
	attrs := inventory.InterfaceAttrs{Mode: "ACCESS", AccessVlan: "nyc__10"}
	intf := &inventory.Interface{
		ID:       inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
		Attrs:    attrs,
		RemoteID: inventory.NewRemoteID(42),
	}
	adapter, client := newTestAdapter(t, Config{}, seedDevice("sw1", 7), intf)

	outcome := adapter.UpdateInterface(context.Background(), intf, attrs)

	assert.Equal(t, StatusApplied, outcome.Status)
	assert.Equal(t, "no changes", outcome.Reason)
	client.InterfacesMock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateInterface_PatchesAndCommits(t *testing.T) {
	intf := &inventory.Interface{
		ID:       inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
		Attrs:    inventory.InterfaceAttrs{Description: strPtr("old")},
		RemoteID: inventory.NewRemoteID(42),
	}
	adapter, client := newTestAdapter(t, Config{}, seedDevice("sw1", 7), intf)
	client.InterfacesMock.On("Update", mock.Anything, int64(42), mock.MatchedBy(func(p netbox.Params) bool {
		return p["description"] == "new"
	})).Return(&netbox.Object{ID: 42}, nil)

	want := inventory.InterfaceAttrs{Description: strPtr("new")}
	outcome := adapter.UpdateInterface(context.Background(), intf, want)

	require.Equal(t, StatusApplied, outcome.Status)
	assert.True(t, intf.Attrs.Equal(want))
	client.InterfacesMock.AssertExpectations(t)
}

func TestUpdateInterface_Idempotent(t *testing.T) {
	intf := &inventory.Interface{
		ID:       inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
		RemoteID: inventory.NewRemoteID(42),
	}
	adapter, client := newTestAdapter(t, Config{}, seedDevice("sw1", 7), intf)
	client.InterfacesMock.On("Update", mock.Anything, int64(42), mock.Anything).
		Return(&netbox.Object{ID: 42}, nil).Once()

	want := inventory.InterfaceAttrs{MTU: intPtr(9000)}

	first := adapter.UpdateInterface(context.Background(), intf, want)
	require.Equal(t, StatusApplied, first.Status)
	assert.Empty(t, first.Reason)

	// The second application sees the committed attrs and stays local.
	second := adapter.UpdateInterface(context.Background(), intf, want)
	assert.Equal(t, StatusApplied, second.Status)
	assert.Equal(t, "no changes", second.Reason)
	client.InterfacesMock.AssertExpectations(t)
}

func TestUpdateInterface_RemoteErrorKeepsLocalAttrs(t *testing.T) {
	old := inventory.InterfaceAttrs{Description: strPtr("old")}
	intf := &inventory.Interface{
		ID:       inventory.InterfaceID{DeviceName: "sw1", Name: "ge-0/0/0"},
		Attrs:    old,
		RemoteID: inventory.NewRemoteID(42),
	}
	adapter, client := newTestAdapter(t, Config{}, seedDevice("sw1", 7), intf)
	client.InterfacesMock.On("Update", mock.Anything, int64(42), mock.Anything).
		Return(nil, assert.AnError)

	outcome := adapter.UpdateInterface(context.Background(), intf,
		inventory.InterfaceAttrs{Description: strPtr("new")})

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.True(t, intf.Attrs.Equal(old))
}

func TestUpdateVlan_Renames(t *testing.T) {
	vlan := &inventory.Vlan{
		ID:       inventory.VlanID{SiteName: "nyc", VID: 10},
		Attrs:    inventory.VlanAttrs{Name: "old"},
		RemoteID: inventory.NewRemoteID(100),
	}
	adapter, client := newTestAdapter(t, Config{}, vlan)
	client.VlansMock.On("Update", mock.Anything, int64(100), netbox.Params{"name": "users"}).
		Return(&netbox.Object{ID: 100}, nil)

	outcome := adapter.UpdateVlan(context.Background(), vlan, inventory.VlanAttrs{Name: "users"})

	require.Equal(t, StatusApplied, outcome.Status)
	assert.Equal(t, "users", vlan.Attrs.Name)
	client.VlansMock.AssertExpectations(t)
}

func TestUpdateVlan_NoChanges(t *testing.T) {
	vlan := &inventory.Vlan{
		ID:       inventory.VlanID{SiteName: "nyc", VID: 10},
		Attrs:    inventory.VlanAttrs{Name: "users"},
		RemoteID: inventory.NewRemoteID(100),
	}
	adapter, client := newTestAdapter(t, Config{}, vlan)

	outcome := adapter.UpdateVlan(context.Background(), vlan, inventory.VlanAttrs{Name: "users"})

	assert.Equal(t, StatusApplied, outcome.Status)
	assert.Equal(t, "no changes", outcome.Reason)
	client.VlansMock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
