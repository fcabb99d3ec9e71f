package sanitize

import (
	"reflect"
	"testing"
)

func TestApplyDropsUndeclaredAndProtectedFields(t *testing.T) {
	input := map[string]interface{}{
		"company_name":        "  Acme Media  ",
		"account_state":       "ready",
		"subscription_status": "premium",
		"stripe_customer_id":  "cus_123",
		"is_verified":         true,
		"website":             "https://acme.example",
	}

	got := Apply(BrandPublic, input)

	if v, ok := got["company_name"]; !ok || v != "Acme Media" {
		t.Fatalf("company_name = %v, want trimmed string", v)
	}
	if v, ok := got["website"]; !ok || v != "https://acme.example" {
		t.Fatalf("website = %v, want preserved url", v)
	}
	for _, protected := range []string{"account_state", "subscription_status", "stripe_customer_id", "is_verified"} {
		if _, ok := got[protected]; ok {
			t.Fatalf("protected field %q leaked through public schema", protected)
		}
	}
}

func TestApplyEmptyResultSignalsNoChanges(t *testing.T) {
	got := Apply(BrandPublic, map[string]interface{}{
		"account_state": "ready",
		"unknown":       1,
	})
	if len(got) != 0 {
		t.Fatalf("expected empty update set, got %v", got)
	}
}

func TestApplyPrivilegedSchemaAllowsProtectedFields(t *testing.T) {
	got := Apply(BrandPrivileged, map[string]interface{}{
		"account_state":       "exploring",
		"subscription_status": "premium",
	})
	if got["account_state"] != "exploring" {
		t.Fatalf("account_state = %v, want exploring", got["account_state"])
	}
	if got["subscription_status"] != "premium" {
		t.Fatalf("subscription_status = %v, want premium", got["subscription_status"])
	}
}

func TestApplyURLRules(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want interface{} // nil means dropped
	}{
		{name: "absolute_https", raw: "https://portfolio.example/work", want: "https://portfolio.example/work"},
		{name: "absolute_http", raw: "http://portfolio.example", want: "http://portfolio.example"},
		{name: "relative", raw: "/work", want: nil},
		{name: "no_scheme", raw: "portfolio.example", want: nil},
		{name: "bad_scheme", raw: "javascript:alert(1)", want: nil},
		{name: "blank", raw: "   ", want: nil},
		{name: "not_a_string", raw: 42, want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(CreatorPublic, map[string]interface{}{"portfolio_url": tc.raw})
			v, ok := got["portfolio_url"]
			if tc.want == nil {
				if ok {
					t.Fatalf("portfolio_url = %v, want dropped", v)
				}
				return
			}
			if v != tc.want {
				t.Fatalf("portfolio_url = %v, want %v", v, tc.want)
			}
		})
	}
}

func TestApplyNumberRules(t *testing.T) {
	cases := []struct {
		name    string
		raw     interface{}
		want    float64
		dropped bool
	}{
		{name: "float", raw: 120.5, want: 120.5},
		{name: "int", raw: 90, want: 90},
		{name: "numeric_string", raw: " 45.0 ", want: 45},
		{name: "nan_string", raw: "NaN", dropped: true},
		{name: "inf_string", raw: "+Inf", dropped: true},
		{name: "garbage", raw: "a lot", dropped: true},
		{name: "bool", raw: true, dropped: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(CreatorPublic, map[string]interface{}{"min_rate": tc.raw})
			v, ok := got["min_rate"]
			if tc.dropped {
				if ok {
					t.Fatalf("min_rate = %v, want dropped", v)
				}
				return
			}
			if v != tc.want {
				t.Fatalf("min_rate = %v, want %v", v, tc.want)
			}
		})
	}
}

func TestApplyStringArrayDropsBlanks(t *testing.T) {
	got := Apply(CreatorPublic, map[string]interface{}{
		"categories": []interface{}{" fashion ", "", "   ", "travel", 7},
	})
	want := []string{"fashion", "travel"}
	if !reflect.DeepEqual(got["categories"], want) {
		t.Fatalf("categories = %v, want %v", got["categories"], want)
	}
}

func TestRateRange(t *testing.T) {
	cases := []struct {
		name    string
		updates map[string]interface{}
		curMin  float64
		curMax  float64
		wantErr bool
	}{
		{name: "valid_pair", updates: map[string]interface{}{"min_rate": 10.0, "max_rate": 20.0}},
		{name: "min_over_max", updates: map[string]interface{}{"min_rate": 30.0, "max_rate": 20.0}, wantErr: true},
		{name: "min_only_against_stored_max", updates: map[string]interface{}{"min_rate": 50.0}, curMax: 40, wantErr: true},
		{name: "min_only_no_stored_max", updates: map[string]interface{}{"min_rate": 50.0}},
		{name: "negative", updates: map[string]interface{}{"min_rate": -1.0}, wantErr: true},
		{name: "explicit_zero_max_binds", updates: map[string]interface{}{"max_rate": 0.0}, curMin: 50, wantErr: true},
		{name: "explicit_zero_pair", updates: map[string]interface{}{"min_rate": 0.0, "max_rate": 0.0}},
		{name: "untouched", updates: map[string]interface{}{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RateRange(tc.updates, tc.curMin, tc.curMax)
			if (err != nil) != tc.wantErr {
				t.Fatalf("RateRange() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
