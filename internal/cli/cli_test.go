package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/pipeline"
	"github.com/ppiankov/evadvisor/internal/respond"
	"github.com/ppiankov/evadvisor/internal/session"
	"github.com/ppiankov/evadvisor/internal/worker"
	"gopkg.in/yaml.v3"
)

func newChat(t *testing.T, input string) (*chatLoop, *bytes.Buffer) {
	t.Helper()
	p, err := pipeline.NewPipeline(model.DefaultConfig())
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	out := &bytes.Buffer{}
	return &chatLoop{
		handler: p,
		history: session.NewHistory(0),
		in:      strings.NewReader(input),
		out:     out,
	}, out
}

func TestChatLoop_Answers(t *testing.T) {
	c, out := newChat(t, "Hello!\n\nWe need to upgrade our company fleet\n/quit\nnever read\n")

	if err := c.run(); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, respond.GreetingText) {
		t.Error("expected greeting answer")
	}
	if !strings.Contains(text, respond.FleetText) {
		t.Error("expected fleet answer")
	}
	if c.history.Len() != 4 {
		t.Errorf("history has %d turns; want 4", c.history.Len())
	}
}

func TestChatLoop_EOF(t *testing.T) {
	c, _ := newChat(t, "bye")

	if err := c.run(); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	turns := c.history.Turns()
	if len(turns) != 2 || *turns[1].Intent != model.IntentFarewell {
		t.Errorf("unexpected history: %+v", turns)
	}
}

func TestChatLoop_RoleCommand(t *testing.T) {
	c, out := newChat(t, "/role policymaker\nour Pacifica PHEV fleet\n/role astronaut\n")

	if err := c.run(); err != nil {
		t.Fatal(err)
	}
	if c.role != model.RolePolicymaker {
		t.Errorf("role = %s; want policymaker", c.role)
	}
	text := out.String()
	if !strings.Contains(text, respond.PolicyPHEVPhaseoutText) {
		t.Error("expected the policymaker PHEV answer")
	}
	if !strings.Contains(text, "unknown role") {
		t.Error("expected an error for an unknown role")
	}
}

func TestChatLoop_HistoryAndExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.json")
	c, out := newChat(t, "/history\nsell my car\n/history\n/export "+path+"\n/export\n/nope\n")

	if err := c.run(); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	if !strings.Contains(text, "(no messages yet)") {
		t.Error("expected empty-history notice")
	}
	if !strings.Contains(text, "assistant [selling]") {
		t.Errorf("expected labelled assistant turn in:\n%s", text)
	}
	if !strings.Contains(text, "usage: /export") {
		t.Error("expected usage for bare /export")
	}
	if !strings.Contains(text, "unknown command /nope") {
		t.Error("expected unknown command notice")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	var turns []model.ChatTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(turns) != 2 {
		t.Errorf("exported %d turns; want 2", len(turns))
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".evadvisor", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# evadvisor configuration") {
		t.Error("expected comment header")
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config does not parse: %v", err)
	}
	if cfg.Resolver.Mode != model.ModeRules {
		t.Errorf("resolver.mode = %q; want %q", cfg.Resolver.Mode, model.ModeRules)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr = %q; want :8080", cfg.Server.Addr)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when the config file already exists")
	}
}

func TestWriteBatch(t *testing.T) {
	results := []*worker.BatchResult{
		{Index: 0, Message: "hello", Reply: &model.Reply{Message: "hello", Intent: model.IntentGreeting, Source: model.SourceRules, Response: "Hi"}},
		{Index: 1, Message: "late", Error: errors.New("context deadline exceeded")},
	}

	var table bytes.Buffer
	if err := writeBatch(&table, "", results); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(table.String(), "[greeting] hello") || !strings.Contains(table.String(), "✗ late") {
		t.Errorf("unexpected table:\n%s", table.String())
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	if err := writeBatch(nil, csvPath, results); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(csvPath)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 CSV lines, got %d", len(lines))
	}
	if lines[1] != "0,hello,greeting,rules,none,general,Hi," {
		t.Errorf("row = %q", lines[1])
	}

	jsonPath := filepath.Join(dir, "out.json")
	if err := writeBatch(nil, jsonPath, results); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(jsonPath)
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 || records[1]["error"] != "context deadline exceeded" {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestNewServerLogger_Level(t *testing.T) {
	var quiet bytes.Buffer
	newServerLogger(&quiet, model.OutputConfig{}).Debug("hidden")
	if quiet.Len() != 0 {
		t.Errorf("debug record written without output.verbose: %s", quiet.String())
	}

	var loud bytes.Buffer
	newServerLogger(&loud, model.OutputConfig{Verbose: true}).Debug("shown", "k", "v")

	var record map[string]interface{}
	if err := json.Unmarshal(loud.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", loud.String(), err)
	}
	if record["level"] != "DEBUG" || record["msg"] != "shown" {
		t.Errorf("record = %v", record)
	}
}

func TestLoadConfig_VerboseFromEnv(t *testing.T) {
	t.Setenv("EVADVISOR_OUTPUT_VERBOSE", "true")
	initConfig()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Output.Verbose {
		t.Error("EVADVISOR_OUTPUT_VERBOSE=true did not reach output.verbose")
	}
}
