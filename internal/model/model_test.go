package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPage_Clamp(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero value", Page{}, Page{Offset: 0, Limit: MaxPageSize}},
		{"negative offset", Page{Offset: -10, Limit: 5}, Page{Offset: 0, Limit: 5}},
		{"oversized limit", Page{Offset: 20, Limit: 500}, Page{Offset: 20, Limit: MaxPageSize}},
		{"in range", Page{Offset: 3, Limit: 7}, Page{Offset: 3, Limit: 7}},
	}
	for _, tc := range cases {
		if got := tc.in.Clamp(); got != tc.want {
			t.Fatalf("%s: Clamp(%+v) = %+v, want %+v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	t.Parallel()
	for _, s := range []string{StatusDraft, StatusSent, StatusPaid} {
		if !ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "draft", "OVERDUE"} {
		if ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = true", s)
		}
	}
}

func TestClientPatch_Apply_OnlyNonNilFields(t *testing.T) {
	t.Parallel()
	email := "old@acme.com"
	c := Client{Name: "Acme", Email: &email}

	name := "Acme Corp"
	(ClientPatch{Name: &name}).Apply(&c)

	if c.Name != "Acme Corp" {
		t.Fatalf("name not applied: %+v", c)
	}
	if c.Email == nil || *c.Email != "old@acme.com" {
		t.Fatalf("absent field must stay untouched: %+v", c)
	}
}

func TestInvoicePatch_Apply_SkipsItems(t *testing.T) {
	t.Parallel()
	inv := Invoice{Status: StatusDraft, Amount: 100, Items: []InvoiceItem{{Description: "x"}}}

	status := StatusPaid
	items := []InvoiceItemCreate{{Description: "y"}}
	(InvoicePatch{Status: &status, Items: &items}).Apply(&inv)

	if inv.Status != StatusPaid || inv.Amount != 100 {
		t.Fatalf("scalar merge wrong: %+v", inv)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "x" {
		t.Fatalf("Apply must not touch items: %+v", inv.Items)
	}
}

func TestPrivateEntitiesHideOwnerInJSON(t *testing.T) {
	t.Parallel()
	for name, v := range map[string]any{
		"client":  Client{UserID: "secret"},
		"invoice": Invoice{UserID: "secret"},
		"note":    Note{UserID: "secret"},
	} {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		if strings.Contains(string(b), "secret") || strings.Contains(string(b), "user_id") {
			t.Fatalf("%s: owner leaked: %s", name, b)
		}
	}
}

func TestMarketplaceEntitiesExposeOwnerInJSON(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(SharedWorkspace{UserID: "owner-1", Layout: json.RawMessage(`{}`)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["user_id"] != "owner-1" {
		t.Fatalf("marketplace owner must be visible: %s", b)
	}
	if _, ok := m["layout_json"]; !ok {
		t.Fatalf("layout_json key missing: %s", b)
	}
}
