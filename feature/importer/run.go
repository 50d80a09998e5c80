package importer

import (
	"context"
	"fmt"

	"netbox-importer/core/diff"
	"netbox-importer/core/inventory"

	"go.uber.org/zap"
)

// Summary tallies the outcomes of one plan application.
type Summary struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Total returns the number of intents accounted for.
func (s Summary) Total() int { return s.Applied + s.Skipped + s.Failed }

// ApplyPlan executes the plan's intents in order against NetBox. Skips are
// counted and execution continues; the first failed intent aborts the run,
// since the dependency ordering gives no way to apply later intents safely.
// Desired-state attributes come from the desired context.
func (a *Adapter) ApplyPlan(ctx context.Context, plan *diff.Plan, desired *inventory.Context) (Summary, error) {
	var summary Summary
	for _, intent := range plan.Intents {
		outcome := a.applyIntent(ctx, intent, desired)
		switch outcome.Status {
		case StatusApplied:
			summary.Applied++
		case StatusSkipped:
			summary.Skipped++
			a.log.Info("Skipped intent",
				zap.String("op", string(intent.Op)),
				zap.String("kind", string(intent.Kind)),
				zap.String("uid", intent.UID),
				zap.String("reason", outcome.Reason))
		case StatusFailed:
			summary.Failed++
			a.log.Error("Failed intent, aborting run",
				zap.String("op", string(intent.Op)),
				zap.String("kind", string(intent.Kind)),
				zap.String("uid", intent.UID),
				zap.Error(outcome.Err))
			return summary, fmt.Errorf("apply %s %s %s: %w", intent.Op, intent.Kind, intent.UID, outcome.Err)
		}
	}
	return summary, nil
}

func (a *Adapter) applyIntent(ctx context.Context, intent diff.Intent, desired *inventory.Context) Outcome {
	switch intent.Op {
	case diff.OpCreate:
		return a.applyCreate(ctx, intent, desired)
	case diff.OpUpdate:
		return a.applyUpdate(ctx, intent, desired)
	case diff.OpDelete:
		return a.applyDelete(ctx, intent)
	}
	return failed(fmt.Errorf("unknown op %q", intent.Op))
}

func (a *Adapter) applyCreate(ctx context.Context, intent diff.Intent, desired *inventory.Context) Outcome {
	switch intent.Kind {
	case inventory.KindInterface:
		intf := desired.InterfaceByUID(intent.UID)
		if intf == nil {
			return failed(fmt.Errorf("interface %s missing from desired state", intent.UID))
		}
		_, outcome := a.CreateInterface(ctx, intf.ID, intf.Attrs)
		return outcome
	case inventory.KindIPAddress:
		ip := desired.IPAddress(intent.UID)
		if ip == nil {
			return failed(fmt.Errorf("ip address %s missing from desired state", intent.UID))
		}
		_, outcome := a.CreateIPAddress(ctx, ip.ID, ip.Attrs)
		return outcome
	case inventory.KindPrefix:
		e, ok := desired.Get(inventory.KindPrefix, intent.UID)
		if !ok {
			return failed(fmt.Errorf("prefix %s missing from desired state", intent.UID))
		}
		prefix := e.(*inventory.Prefix)
		_, outcome := a.CreatePrefix(ctx, prefix.ID, prefix.Attrs)
		return outcome
	case inventory.KindVlan:
		vlan := desired.VlanByUID(intent.UID)
		if vlan == nil {
			return failed(fmt.Errorf("vlan %s missing from desired state", intent.UID))
		}
		_, outcome := a.CreateVlan(ctx, vlan.ID, vlan.Attrs)
		return outcome
	case inventory.KindCable:
		e, ok := desired.Get(inventory.KindCable, intent.UID)
		if !ok {
			return failed(fmt.Errorf("cable %s missing from desired state", intent.UID))
		}
		_, outcome := a.CreateCable(ctx, e.(*inventory.Cable).ID)
		return outcome
	}
	return failed(fmt.Errorf("cannot create kind %q", intent.Kind))
}

func (a *Adapter) applyUpdate(ctx context.Context, intent diff.Intent, desired *inventory.Context) Outcome {
	switch intent.Kind {
	case inventory.KindInterface:
		want := desired.InterfaceByUID(intent.UID)
		have := a.inv.InterfaceByUID(intent.UID)
		if want == nil || have == nil {
			return failed(fmt.Errorf("interface %s missing on one side of the update", intent.UID))
		}
		return a.UpdateInterface(ctx, have, want.Attrs)
	case inventory.KindVlan:
		want := desired.VlanByUID(intent.UID)
		have := a.inv.VlanByUID(intent.UID)
		if want == nil || have == nil {
			return failed(fmt.Errorf("vlan %s missing on one side of the update", intent.UID))
		}
		return a.UpdateVlan(ctx, have, want.Attrs)
	}
	return failed(fmt.Errorf("cannot update kind %q", intent.Kind))
}

func (a *Adapter) applyDelete(ctx context.Context, intent diff.Intent) Outcome {
	switch intent.Kind {
	case inventory.KindInterface:
		intf := a.inv.InterfaceByUID(intent.UID)
		if intf == nil {
			return failed(fmt.Errorf("interface %s not registered, cannot delete", intent.UID))
		}
		return a.DeleteInterface(ctx, intf)
	case inventory.KindIPAddress:
		ip := a.inv.IPAddress(intent.UID)
		if ip == nil {
			return failed(fmt.Errorf("ip address %s not registered, cannot delete", intent.UID))
		}
		return a.DeleteIPAddress(ctx, ip)
	case inventory.KindCable:
		e, ok := a.inv.Get(inventory.KindCable, intent.UID)
		if !ok {
			return failed(fmt.Errorf("cable %s not registered, cannot delete", intent.UID))
		}
		return a.DeleteCable(ctx, e.(*inventory.Cable))
	}
	return failed(fmt.Errorf("cannot delete kind %q", intent.Kind))
}
