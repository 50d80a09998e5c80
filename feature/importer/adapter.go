package importer

import (
	"sync"

	"netbox-importer/core/inventory"
	"netbox-importer/core/netbox"

	"go.uber.org/zap"
)

// Adapter applies entity-level create/update/delete intents against NetBox.
// Operations mutate the shared inventory Context in place (remote ids,
// connected-endpoint markers); the internal mutex serializes operations so
// each one observes the writes of the previous one, which the cable guards
// depend on.
type Adapter struct {
	mu     sync.Mutex
	inv    *inventory.Context
	client netbox.Client
	log    *zap.Logger
	cfg    Config
}

// New creates an adapter bound to one reconciliation context.
func New(inv *inventory.Context, client netbox.Client, log *zap.Logger, cfg Config) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{inv: inv, client: client, log: log, cfg: cfg}
}

// Inventory returns the remote-facing context the adapter mutates.
func (a *Adapter) Inventory() *inventory.Context { return a.inv }

// Status classifies the outcome of one apply operation.
type Status string

const (
	// StatusApplied means the intent took effect (or was a no-op update).
	StatusApplied Status = "applied"
	// StatusSkipped means an expected business-rule conflict stopped the
	// intent; dependent intents must not assume the entity materialized.
	StatusSkipped Status = "skipped"
	// StatusFailed means an unexpected transport or ordering error; the
	// error propagates to the caller.
	StatusFailed Status = "failed"
)

// Outcome is the result of one apply operation.
type Outcome struct {
	Status Status
	// Reason explains a skip or no-op in human terms.
	Reason string
	// Err is set only for StatusFailed.
	Err error
}

func applied() Outcome              { return Outcome{Status: StatusApplied} }
func unchanged() Outcome            { return Outcome{Status: StatusApplied, Reason: "no changes"} }
func skipped(reason string) Outcome { return Outcome{Status: StatusSkipped, Reason: reason} }
func failed(err error) Outcome      { return Outcome{Status: StatusFailed, Err: err} }
