package navguard

import (
	"errors"
	"testing"
)

func testBuilder() *Builder {
	cfg := defaultConfig()
	cfg.Refresh.Enabled = false
	return New().
		WithConfig(cfg).
		WithRouter(&fakeRouter{}).
		WithLocation(&fakeLocation{})
}

func TestBuilderRequiresRouter(t *testing.T) {
	_, err := New().WithLocation(&fakeLocation{}).Build()
	if err == nil || err.Error() != "router required" {
		t.Fatalf("expected router required, got %v", err)
	}
}

func TestBuilderRequiresLocation(t *testing.T) {
	_, err := New().WithRouter(&fakeRouter{}).Build()
	if err == nil || err.Error() != "location required" {
		t.Fatalf("expected location required, got %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	builder := testBuilder()
	shell, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer shell.Close()

	if _, err := builder.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Guard.LoginURL = ""

	_, err := New().
		WithConfig(cfg).
		WithRouter(&fakeRouter{}).
		WithLocation(&fakeLocation{}).
		Build()
	if err == nil {
		t.Fatal("expected Build to fail on invalid config")
	}
}

func TestBuilderRejectsEmptyStateName(t *testing.T) {
	_, err := testBuilder().WithState(State{}).Build()
	if !errors.Is(err, ErrStateNameRequired) {
		t.Fatalf("expected ErrStateNameRequired, got %v", err)
	}
}

func TestBuilderRejectsDuplicateState(t *testing.T) {
	_, err := testBuilder().
		WithState(State{Name: "home"}).
		WithState(State{Name: "home"}).
		Build()
	if !errors.Is(err, ErrDuplicateState) {
		t.Fatalf("expected ErrDuplicateState, got %v", err)
	}
}

func TestBuilderRejectsDuplicateDependency(t *testing.T) {
	_, err := testBuilder().
		WithDependency("router").
		WithDependency("router").
		Build()
	if !errors.Is(err, ErrDuplicateDependency) {
		t.Fatalf("expected ErrDuplicateDependency, got %v", err)
	}
}

func TestBuilderPreservesDependencyOrder(t *testing.T) {
	shell, err := testBuilder().
		WithDependency("router").
		WithDependency("sanitize").
		WithDependency("animate").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer shell.Close()

	deps := shell.Dependencies()
	want := []string{"router", "sanitize", "animate"}
	if len(deps) != len(want) {
		t.Fatalf("expected %d dependencies, got %d", len(want), len(deps))
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Fatalf("expected dependency %d to be %q, got %q", i, want[i], deps[i])
		}
	}
}
