package mocks

import (
	"context"

	"netbox-importer/core/netbox"

	"github.com/stretchr/testify/mock"
)

// Resource is a mock implementation of netbox.Resource.
type Resource struct {
	mock.Mock
}

func (m *Resource) Create(ctx context.Context, params netbox.Params) (*netbox.Object, error) {
	args := m.Called(ctx, params)
	if obj, ok := args.Get(0).(*netbox.Object); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Resource) Get(ctx context.Context, id int64) (*netbox.Object, error) {
	args := m.Called(ctx, id)
	if obj, ok := args.Get(0).(*netbox.Object); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Resource) Update(ctx context.Context, id int64, data netbox.Params) (*netbox.Object, error) {
	args := m.Called(ctx, id, data)
	if obj, ok := args.Get(0).(*netbox.Object); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Resource) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// InterfaceResource is a mock implementation of netbox.InterfaceResource.
type InterfaceResource struct {
	Resource
}

func (m *InterfaceResource) Find(ctx context.Context, deviceName, name string) (*netbox.Object, error) {
	args := m.Called(ctx, deviceName, name)
	if obj, ok := args.Get(0).(*netbox.Object); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

// Client is a netbox.Client fixture with one mock per resource, so tests
// can set expectations on exactly the endpoints they exercise.
type Client struct {
	SitesMock       *Resource
	DevicesMock     *Resource
	InterfacesMock  *InterfaceResource
	IPAddressesMock *Resource
	PrefixesMock    *Resource
	VlansMock       *Resource
	CablesMock      *Resource
}

// NewClient creates a mock client with all resources initialized.
func NewClient() *Client {
	return &Client{
		SitesMock:       new(Resource),
		DevicesMock:     new(Resource),
		InterfacesMock:  new(InterfaceResource),
		IPAddressesMock: new(Resource),
		PrefixesMock:    new(Resource),
		VlansMock:       new(Resource),
		CablesMock:      new(Resource),
	}
}

func (c *Client) Sites() netbox.Resource               { return c.SitesMock }
func (c *Client) Devices() netbox.Resource             { return c.DevicesMock }
func (c *Client) Interfaces() netbox.InterfaceResource { return c.InterfacesMock }
func (c *Client) IPAddresses() netbox.Resource         { return c.IPAddressesMock }
func (c *Client) Prefixes() netbox.Resource            { return c.PrefixesMock }
func (c *Client) Vlans() netbox.Resource               { return c.VlansMock }
func (c *Client) Cables() netbox.Resource              { return c.CablesMock }
