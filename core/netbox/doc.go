// Package netbox provides the client used to talk to the NetBox REST API.
//
// The client is a flat, per-resource CRUD transport: each resource type
// (sites, devices, interfaces, IP addresses, prefixes, VLANs, cables)
// exposes Create, Get, Update and Delete. NetBox enforces no cross-object
// consistency, so all ordering and referential-integrity concerns live in
// the importer adapter, not here.
//
// Request rejections (HTTP 4xx) are surfaced as *RequestError so callers
// can distinguish an expected validation conflict from a transport failure.
package netbox
