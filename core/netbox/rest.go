package netbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// restClient talks to the NetBox REST API over HTTP.
type restClient struct {
	base  *url.URL
	token string
	http  *http.Client

	sites       *endpoint
	devices     *endpoint
	interfaces  *interfaceEndpoint
	ipAddresses *endpoint
	prefixes    *endpoint
	vlans       *endpoint
	cables      *endpoint
}

// NewClient creates a NetBox API client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid netbox url %q: %w", cfg.URL, err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict transport timeouts so one hung call cannot stall a whole run.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c := &restClient{
		base:  base,
		token: cfg.Token,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}

	c.sites = &endpoint{c: c, path: "/api/dcim/sites/"}
	c.devices = &endpoint{c: c, path: "/api/dcim/devices/"}
	c.interfaces = &interfaceEndpoint{endpoint{c: c, path: "/api/dcim/interfaces/"}}
	c.ipAddresses = &endpoint{c: c, path: "/api/ipam/ip-addresses/"}
	c.prefixes = &endpoint{c: c, path: "/api/ipam/prefixes/"}
	c.vlans = &endpoint{c: c, path: "/api/ipam/vlans/"}
	c.cables = &endpoint{c: c, path: "/api/dcim/cables/"}

	return c, nil
}

func (c *restClient) Sites() Resource               { return c.sites }
func (c *restClient) Devices() Resource             { return c.devices }
func (c *restClient) Interfaces() InterfaceResource { return c.interfaces }
func (c *restClient) IPAddresses() Resource         { return c.ipAddresses }
func (c *restClient) Prefixes() Resource            { return c.prefixes }
func (c *restClient) Vlans() Resource               { return c.vlans }
func (c *restClient) Cables() Resource              { return c.cables }

// do performs one API round-trip and decodes the response into out when
// out is non-nil. HTTP 4xx responses become *RequestError.
func (c *restClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("netbox request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RequestError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
	}
	if resp.StatusCode >= 500 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("netbox server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// endpoint implements Resource for one NetBox list endpoint.
type endpoint struct {
	c    *restClient
	path string
}

func (e *endpoint) Create(ctx context.Context, params Params) (*Object, error) {
	var obj Object
	if err := e.c.do(ctx, http.MethodPost, e.path, params, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (e *endpoint) Get(ctx context.Context, id int64) (*Object, error) {
	var obj Object
	if err := e.c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d/", e.path, id), nil, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (e *endpoint) Update(ctx context.Context, id int64, data Params) (*Object, error) {
	var obj Object
	if err := e.c.do(ctx, http.MethodPatch, fmt.Sprintf("%s%d/", e.path, id), data, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (e *endpoint) Delete(ctx context.Context, id int64) error {
	return e.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", e.path, id), nil, nil)
}

// interfaceEndpoint adds the device-scoped name filter used for cable
// endpoint resolution.
type interfaceEndpoint struct {
	endpoint
}

// listResponse is the envelope NetBox wraps list results in.
type listResponse struct {
	Count   int       `json:"count"`
	Results []*Object `json:"results"`
}

func (e *interfaceEndpoint) Find(ctx context.Context, deviceName, name string) (*Object, error) {
	query := url.Values{}
	query.Set("device", deviceName)
	query.Set("name", name)

	var list listResponse
	if err := e.c.do(ctx, http.MethodGet, e.path+"?"+query.Encode(), nil, &list); err != nil {
		return nil, err
	}
	if len(list.Results) == 0 {
		return nil, nil
	}
	return list.Results[0], nil
}
