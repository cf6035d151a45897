package pipeline

import (
	"sync"
	"testing"

	"github.com/ppiankov/evadvisor/internal/intent"
	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/respond"
)

func newRulesPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(model.DefaultConfig())
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	return p
}

func newModePipeline(t *testing.T, mode string) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Resolver.Mode = mode
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline(%s) failed: %v", mode, err)
	}
	return p
}

func TestPipeline_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		role     model.Role
		intent   model.Intent
		response string
	}{
		{"budget recommendation", "I want to buy a cheap EV under 40k", model.RoleNone, model.IntentRecommendation, respond.BudgetText},
		{"policy", "What should governments do about charging infrastructure?", model.RoleNone, model.IntentPolicy, respond.PolicyText},
		{"fleet", "We need to upgrade our company fleet", model.RoleNone, model.IntentFleet, respond.FleetText},
		{"gibberish", "asdkjhasd", model.RoleNone, model.IntentUnknown, respond.HelpText},
		{"empty", "", model.RoleNone, model.IntentUnknown, respond.HelpText},
		{"policymaker phev", "our Pacifica PHEV fleet", model.RolePolicymaker, model.IntentFleet, respond.PolicyPHEVPhaseoutText},
	}

	for _, mode := range []string{model.ModeRules, model.ModeLearned} {
		p := newModePipeline(t, mode)
		for _, tt := range tests {
			t.Run(mode+"/"+tt.name, func(t *testing.T) {
				reply := p.Handle(tt.message, tt.role)
				if reply.Intent != tt.intent {
					t.Errorf("Intent = %s; want %s", reply.Intent, tt.intent)
				}
				if reply.Response != tt.response {
					t.Errorf("Response = %q; want %q", reply.Response, tt.response)
				}
				if reply.Message != tt.message || reply.Role != tt.role {
					t.Errorf("reply does not echo its input: %+v", reply)
				}
				if tt.intent == model.IntentUnknown && reply.Source != model.SourceFallback {
					t.Errorf("Source = %s; want %s", reply.Source, model.SourceFallback)
				}
			})
		}
	}
}

func TestPipeline_EnumerationAndIdempotence(t *testing.T) {
	inputs := []string{
		"", " ", "???", "thunderstorm", "日本語のテキスト", "\x00\x01",
		"bye bye", "model y range", "hello, which ev should our fleet sell?",
		"I want to buy a cheap EV under 40k",
	}

	for _, mode := range []string{model.ModeRules, model.ModeLearned} {
		p := newModePipeline(t, mode)
		for _, in := range inputs {
			for _, role := range []model.Role{model.RoleNone, model.RoleDealer} {
				first := p.Handle(in, role)
				if !first.Intent.Valid() {
					t.Errorf("%s: Handle(%q) intent %s outside the enumeration", mode, in, first.Intent)
				}
				if first.Response == "" {
					t.Errorf("%s: Handle(%q) returned an empty response", mode, in)
				}
				if second := p.Handle(in, role); second != first {
					t.Errorf("%s: Handle(%q) not idempotent: %+v vs %+v", mode, in, first, second)
				}
			}
		}
	}
}

func TestPipeline_ModeCaseInsensitive(t *testing.T) {
	for _, mode := range []string{"Learned", "LEARNED", " learned "} {
		p := newModePipeline(t, mode)
		if p.Mode() != model.ModeLearned {
			t.Errorf("Mode() = %q for %q; want %q", p.Mode(), mode, model.ModeLearned)
		}
		if reply := p.Handle("Hello", model.RoleNone); reply.Source != model.SourceLearned {
			t.Errorf("mode %q: Source = %s; want %s", mode, reply.Source, model.SourceLearned)
		}
	}

	if p := newModePipeline(t, "RULES"); p.Mode() != model.ModeRules {
		t.Errorf("Mode() = %q; want %q", p.Mode(), model.ModeRules)
	}
}

func TestPipeline_SplitOperations(t *testing.T) {
	p := newRulesPipeline(t)

	in := p.ResolveIntent("Which is the best EV for a family?")
	if in != model.IntentRecommendation {
		t.Fatalf("ResolveIntent() = %s; want %s", in, model.IntentRecommendation)
	}
	if got := p.GenerateResponse(in, "Which is the best EV for a family?", model.RoleNone); got != respond.FamilyText {
		t.Errorf("GenerateResponse() = %q; want %q", got, respond.FamilyText)
	}
}

func TestPipeline_FallbackSource(t *testing.T) {
	p := newRulesPipeline(t)

	reply := p.Handle("asdkjhasd", model.RoleNone)
	if reply.Source != model.SourceFallback {
		t.Errorf("Source = %s; want %s", reply.Source, model.SourceFallback)
	}

	reply = p.Handle("Any policy ideas?", model.RoleNone)
	if reply.Source != model.SourceRules || reply.Trigger != "policy" {
		t.Errorf("reply = %+v; want rules source with trigger %q", reply, "policy")
	}
}

func TestPipeline_LearnedMode(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Resolver.Mode = model.ModeLearned

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	if p.Mode() != model.ModeLearned {
		t.Errorf("Mode() = %q; want %q", p.Mode(), model.ModeLearned)
	}

	reply := p.Handle("Hello", model.RoleNone)
	if reply.Intent != model.IntentGreeting {
		t.Errorf("Intent = %s; want %s", reply.Intent, model.IntentGreeting)
	}
	if reply.Response != respond.GreetingText {
		t.Errorf("Response = %q; want %q", reply.Response, respond.GreetingText)
	}
	if reply.Source != model.SourceLearned {
		t.Errorf("Source = %s; want %s", reply.Source, model.SourceLearned)
	}

	reply = p.Handle("asdkjhasd", model.RoleNone)
	if reply.Intent != model.IntentUnknown || reply.Response != respond.HelpText {
		t.Errorf("out-of-vocabulary reply = %+v; want unknown with help text", reply)
	}
}

func TestPipeline_LearnedModeCustomTraining(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Resolver.Mode = model.ModeLearned
	cfg.Training.Iterations = 0

	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected training error for zero iterations")
	}
}

func TestPipeline_UnknownMode(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Resolver.Mode = "oracle"

	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for unknown resolver mode")
	}
}

func TestPipeline_ModeDefault(t *testing.T) {
	p := New(intent.NewRuleResolver(nil), respond.NewSelector(), nil)
	if p.Mode() != model.ModeRules {
		t.Errorf("Mode() = %q; want %q", p.Mode(), model.ModeRules)
	}
}

type fixedResolver struct {
	intent model.Intent
}

func (f fixedResolver) Resolve(string) intent.Resolution {
	return intent.Resolution{Intent: f.intent, Source: model.SourceLearned}
}

func TestPipeline_OutOfTableIntentFallsBack(t *testing.T) {
	p := New(fixedResolver{intent: model.Intent(99)}, respond.NewSelector(), model.DefaultConfig())

	reply := p.Handle("anything", model.RoleNone)
	if reply.Response != respond.HelpText {
		t.Errorf("Response = %q; want help text", reply.Response)
	}
	if reply.Source != model.SourceFallback {
		t.Errorf("Source = %s; want %s", reply.Source, model.SourceFallback)
	}
}

func TestPipeline_MissingRoleCellReportsFallback(t *testing.T) {
	selector := respond.NewSelectorWithTables(respond.DefaultIntentTable(), map[model.Role]map[model.Cluster]respond.Entry{}, nil)
	p := New(intent.NewRuleResolver(nil), selector, model.DefaultConfig())

	reply := p.Handle("any policy ideas for a model y?", model.RoleConsumer)
	if reply.Response != respond.HelpText {
		t.Errorf("Response = %q; want help text", reply.Response)
	}
	if reply.Source != model.SourceFallback {
		t.Errorf("Source = %s; want %s", reply.Source, model.SourceFallback)
	}
}

func TestPipeline_ConcurrentHandle(t *testing.T) {
	p := newRulesPipeline(t)

	messages := []string{
		"I want to buy a cheap EV under 40k",
		"What should governments do about charging infrastructure?",
		"We need to upgrade our company fleet",
		"asdkjhasd",
	}
	want := make([]model.Reply, len(messages))
	for i, msg := range messages {
		want[i] = p.Handle(msg, model.RoleNone)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for g := 0; g < 25; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			i := g % len(messages)
			if got := p.Handle(messages[i], model.RoleNone); got != want[i] {
				errs <- messages[i]
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Errorf("concurrent Handle(%q) differed from sequential result", msg)
	}
}
