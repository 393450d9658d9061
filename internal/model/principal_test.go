package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestKindNaturalKeyField(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUser, "email"},
		{KindFarmer, "pan_card"},
		{KindAdmin, "employee_id"},
	}
	for _, test := range tests {
		if got := test.kind.NaturalKeyField(); got != test.want {
			t.Errorf("%s natural key field = %q, want %q", test.kind, got, test.want)
		}
	}
}

func TestKindIsValid(t *testing.T) {
	for _, kind := range []Kind{KindUser, KindFarmer, KindAdmin} {
		if !kind.IsValid() {
			t.Errorf("%s should be valid", kind)
		}
	}
	if Kind("superuser").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestPublicView(t *testing.T) {
	now := time.Now().UTC()
	p := &Principal{
		ID:           "01ABC",
		Kind:         KindFarmer,
		NaturalKey:   "ABCDE1234F",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$salt$hash",
		FirstName:    "Asha",
		LastName:     "Patel",
		Phone:        "9000000001",
		Profile: map[string]any{
			"land_details": map[string]any{"acres": 4},
			"id":           "spoofed",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	view := p.PublicView()

	if view["pan_card"] != "ABCDE1234F" {
		t.Fatalf("natural key missing or misnamed: %v", view["pan_card"])
	}
	if view["user_type"] != "farmer" {
		t.Fatalf("user_type = %v", view["user_type"])
	}
	if view["id"] != "01ABC" {
		t.Fatalf("profile key shadowed a typed field: %v", view["id"])
	}
	if _, ok := view["land_details"]; !ok {
		t.Fatal("profile field missing from view")
	}
	if _, ok := view["email"]; ok {
		t.Fatal("empty email should be omitted")
	}

	// The hash must not survive serialization under any name.
	encoded, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if strings.Contains(string(encoded), "argon2id") {
		t.Fatal("password hash leaked into public view")
	}
}
