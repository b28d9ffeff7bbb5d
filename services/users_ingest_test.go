package services

import (
	"testing"

	"dawah-report-api/models"
)

func TestDecodeUsersPayloadBothShapes(t *testing.T) {
	wrapped := []byte(`{"users":[
		{"email":"a@x.com","role":"centraladmin"},
		{"email":"d@x.com","role":"daye","markaz":"Markaz A"}
	]}`)
	users, err := DecodeUsersPayload(wrapped)
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("wrapped users = %d, want 2", len(users))
	}
	if users[1].Markaz.Name != "Markaz A" {
		t.Fatalf("legacy markaz = %+v", users[1].Markaz)
	}

	bare := []byte(`[{"email":"c@x.com","role":"markazadmin","markaz":{"id":"m1","name":"Markaz A"}}]`)
	users, err = DecodeUsersPayload(bare)
	if err != nil {
		t.Fatalf("bare: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("bare users = %d, want 1", len(users))
	}
	if users[0].Markaz.ID != "m1" {
		t.Fatalf("relation markaz = %+v", users[0].Markaz)
	}

	// The two shapes must agree on markaz identity.
	legacy := models.MarkazRef{Name: "Markaz A"}
	if !models.SameMarkaz(legacy, users[0].Markaz) {
		t.Fatal("string and relation markaz must match by name")
	}
}

func TestDecodeUsersPayloadGarbage(t *testing.T) {
	if _, err := DecodeUsersPayload([]byte(`"nope"`)); err == nil {
		t.Fatal("expected error for non-list payload")
	}
}
