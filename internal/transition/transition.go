package transition

import "github.com/PontyConecta/ponty-conecta-sub002/internal/types"

// Entity discriminants for the transition tables.
const (
	EntityDelivery    = "delivery"
	EntityApplication = "application"
	EntityDispute     = "dispute"
	EntityCampaign    = "campaign"
)

// tables is static configuration built once at init. Anything not listed is
// an illegal transition; there is no wildcard and no regression path.
var tables = map[string]map[string][]string{
	EntityDelivery: {
		types.DeliveryStatusPending: {types.DeliveryStatusSubmitted},
		types.DeliveryStatusSubmitted: {
			types.DeliveryStatusInDispute,
			types.DeliveryStatusApproved,
			types.DeliveryStatusRejected,
		},
		types.DeliveryStatusInDispute: {
			types.DeliveryStatusApproved,
			types.DeliveryStatusRejected,
		},
	},
	EntityApplication: {
		types.ApplicationStatusPending: {
			types.ApplicationStatusWithdrawn,
			types.ApplicationStatusRejected,
			types.ApplicationStatusAccepted,
		},
	},
	EntityDispute: {
		types.DisputeStatusOpen: {types.DisputeStatusResolved},
	},
	EntityCampaign: {
		types.CampaignStatusDraft: {types.CampaignStatusActive},
		types.CampaignStatusActive: {
			types.CampaignStatusPaused,
			types.CampaignStatusCompleted,
		},
		types.CampaignStatusPaused: {
			types.CampaignStatusActive,
			types.CampaignStatusArchived,
		},
		types.CampaignStatusCompleted: {types.CampaignStatusArchived},
	},
}

// Allowed reports whether entity may move from one status to another. It must
// be consulted before any write is issued, against a freshly re-read status.
func Allowed(entity, from, to string) bool {
	table, ok := tables[entity]
	if !ok {
		return false
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AccountStateAllowed enforces forward-only account states:
// incomplete -> exploring -> ready, no regression.
func AccountStateAllowed(from, to string) bool {
	rank := map[string]int{
		types.AccountStateIncomplete: 0,
		types.AccountStateExploring:  1,
		types.AccountStateReady:      2,
	}
	f, okF := rank[from]
	t, okT := rank[to]
	if !okF || !okT {
		return false
	}
	return t >= f
}
