package netbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "secret", TimeoutSeconds: 5})
	require.NoError(t, err)
	return client
}

func TestCreate_SendsTokenAndDecodesObject(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/dcim/interfaces/", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "name": "ge-0/0/0"})
	})

	obj, err := client.Interfaces().Create(context.Background(), Params{"name": "ge-0/0/0", "device": 7})
	require.NoError(t, err)
	assert.Equal(t, int64(42), obj.ID)
	assert.Equal(t, "ge-0/0/0", obj.Name)
	assert.Equal(t, "Token secret", gotAuth)
	assert.Equal(t, "ge-0/0/0", gotBody["name"])
}

func TestCreate_ExplicitNullIsSerialized(t *testing.T) {
	var raw map[string]json.RawMessage

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1})
	})

	_, err := client.Interfaces().Create(context.Background(), Params{"untagged_vlan": nil})
	require.NoError(t, err)

	// The key must be present with a literal null, not omitted.
	val, ok := raw["untagged_vlan"]
	require.True(t, ok)
	assert.Equal(t, "null", string(val))
}

func TestRequestRejection_ReturnsRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"vid": ["VLAN with this vid already exists."]}`))
	})

	_, err := client.Vlans().Create(context.Background(), Params{"vid": 10})
	require.Error(t, err)
	assert.True(t, IsRequestError(err))

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
	assert.Contains(t, re.Detail, "already exists")
}

func TestServerError_IsNotRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Cables().Create(context.Background(), Params{})
	require.Error(t, err)
	assert.False(t, IsRequestError(err))
}

func TestUpdate_UsesPatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/ipam/vlans/9/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "name": "renamed"})
	})

	obj, err := client.Vlans().Update(context.Background(), 9, Params{"name": "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", obj.Name)
}

func TestDelete_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.IPAddresses().Delete(context.Background(), 3)
	assert.NoError(t, err)
}

func TestFind_FiltersByDeviceAndName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sw1", r.URL.Query().Get("device"))
		assert.Equal(t, "et-0/0/1", r.URL.Query().Get("name"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 1,
			"results": []map[string]any{
				{"id": 15, "name": "et-0/0/1", "connected_endpoint_type": "dcim.interface"},
			},
		})
	})

	obj, err := client.Interfaces().Find(context.Background(), "sw1", "et-0/0/1")
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, int64(15), obj.ID)
	assert.Equal(t, "dcim.interface", obj.ConnectedEndpointType)
}

func TestFind_NoMatchReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []any{}})
	})

	obj, err := client.Interfaces().Find(context.Background(), "sw1", "missing")
	require.NoError(t, err)
	assert.Nil(t, obj)
}
