package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseIntent(t *testing.T) {
	for _, in := range Intents() {
		got, err := ParseIntent(in.String())
		if err != nil || got != in {
			t.Errorf("ParseIntent(%q) = (%s, %v)", in.String(), got, err)
		}
	}

	if got, err := ParseIntent("General"); err != nil || got != IntentUnknown {
		t.Errorf("ParseIntent(General) = (%s, %v); want unknown", got, err)
	}
	if _, err := ParseIntent("weather"); err == nil {
		t.Error("expected error for unknown intent")
	}
}

func TestIntent_Valid(t *testing.T) {
	if !IntentFarewell.Valid() {
		t.Error("farewell should be valid")
	}
	if Intent(99).Valid() {
		t.Error("Intent(99) should be invalid")
	}
}

func TestIntent_JSON(t *testing.T) {
	data, err := json.Marshal(TrainingExample{Intent: IntentPolicy, Phrase: "tax credits"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"intent":"policy","phrase":"tax credits"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var ex TrainingExample
	if err := json.Unmarshal(data, &ex); err != nil {
		t.Fatal(err)
	}
	if ex.Intent != IntentPolicy {
		t.Errorf("Intent = %s; want policy", ex.Intent)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"", RoleNone},
		{"none", RoleNone},
		{"Consumer", RoleConsumer},
		{"policymaker", RolePolicymaker},
		{"policy-maker", RolePolicymaker},
		{"government", RolePolicymaker},
		{"fleet manager", RoleFleetManager},
		{"fleet_manager", RoleFleetManager},
		{"fleet", RoleFleetManager},
		{" DEALER ", RoleDealer},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if err != nil {
			t.Errorf("ParseRole(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseRole("astronaut"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestRoles_ExcludeNone(t *testing.T) {
	for _, r := range Roles() {
		if r == RoleNone {
			t.Error("Roles() must not include RoleNone")
		}
	}
	if len(Roles()) != 4 {
		t.Errorf("expected 4 roles, got %d", len(Roles()))
	}
}

func TestParseCluster(t *testing.T) {
	for _, c := range Clusters() {
		got, err := ParseCluster(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCluster(%q) = (%s, %v)", c.String(), got, err)
		}
	}
	if _, err := ParseCluster("Cluster 9"); err == nil {
		t.Error("expected error for unknown cluster")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Resolver.Mode != ModeRules {
		t.Errorf("Mode = %q; want %q", cfg.Resolver.Mode, ModeRules)
	}
	if cfg.Training.Iterations <= 0 || cfg.Training.LearningRate <= 0 {
		t.Errorf("invalid training defaults: %+v", cfg.Training)
	}
	if cfg.Batch.Workers < 1 {
		t.Errorf("Workers = %d; want >= 1", cfg.Batch.Workers)
	}
	if cfg.Session.TTL <= 0 {
		t.Errorf("TTL = %v; want > 0", cfg.Session.TTL)
	}
}
