package transition

import (
	"testing"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

func TestDeliveryTransitions(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending_to_submitted", from: "pending", to: "submitted", want: true},
		{name: "submitted_to_in_dispute", from: "submitted", to: "in_dispute", want: true},
		{name: "submitted_to_approved", from: "submitted", to: "approved", want: true},
		{name: "submitted_to_rejected", from: "submitted", to: "rejected", want: true},
		{name: "in_dispute_to_approved", from: "in_dispute", to: "approved", want: true},
		{name: "in_dispute_to_rejected", from: "in_dispute", to: "rejected", want: true},
		{name: "approved_is_terminal", from: "approved", to: "submitted", want: false},
		{name: "rejected_is_terminal", from: "rejected", to: "pending", want: false},
		{name: "pending_cannot_dispute", from: "pending", to: "in_dispute", want: false},
		{name: "no_resubmit", from: "submitted", to: "pending", want: false},
		{name: "unknown_status", from: "weird", to: "submitted", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(EntityDelivery, tc.from, tc.to); got != tc.want {
				t.Fatalf("Allowed(delivery, %s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestApplicationTransitions(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending_to_withdrawn", from: "pending", to: "withdrawn", want: true},
		{name: "pending_to_rejected", from: "pending", to: "rejected", want: true},
		{name: "pending_to_accepted", from: "pending", to: "accepted", want: true},
		{name: "withdrawn_is_terminal", from: "withdrawn", to: "pending", want: false},
		{name: "rejected_is_terminal", from: "rejected", to: "accepted", want: false},
		{name: "accepted_is_terminal", from: "accepted", to: "rejected", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(EntityApplication, tc.from, tc.to); got != tc.want {
				t.Fatalf("Allowed(application, %s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestDisputeTransitions(t *testing.T) {
	if !Allowed(EntityDispute, "open", "resolved") {
		t.Fatal("open -> resolved should be allowed")
	}
	if Allowed(EntityDispute, "resolved", "open") {
		t.Fatal("resolved -> open should be disallowed")
	}
}

func TestUnknownEntityAlwaysDisallowed(t *testing.T) {
	if Allowed("user", "pending", "submitted") {
		t.Fatal("transitions for unknown entities must be disallowed")
	}
}

func TestAccountStateForwardOnly(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "incomplete_to_exploring", from: types.AccountStateIncomplete, to: types.AccountStateExploring, want: true},
		{name: "incomplete_to_ready", from: types.AccountStateIncomplete, to: types.AccountStateReady, want: true},
		{name: "exploring_to_ready", from: types.AccountStateExploring, to: types.AccountStateReady, want: true},
		{name: "same_state", from: types.AccountStateReady, to: types.AccountStateReady, want: true},
		{name: "ready_regression", from: types.AccountStateReady, to: types.AccountStateIncomplete, want: false},
		{name: "exploring_regression", from: types.AccountStateExploring, to: types.AccountStateIncomplete, want: false},
		{name: "unknown_state", from: "limbo", to: types.AccountStateReady, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AccountStateAllowed(tc.from, tc.to); got != tc.want {
				t.Fatalf("AccountStateAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
