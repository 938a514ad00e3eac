package main

import "testing"

func TestRootCommandDefaultsToLoop(t *testing.T) {
	t.Parallel()

	root := newRootCommand()
	if root.RunE == nil {
		t.Fatalf("bare invocation must start the monitoring loop")
	}
}

func TestRootCommandRegistersModes(t *testing.T) {
	t.Parallel()

	root := newRootCommand()
	want := map[string]bool{"run": false, "check": false, "refresh": false, "test": false, "stats": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing %s subcommand", name)
		}
	}
}
