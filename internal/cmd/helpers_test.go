package cmd

import (
	"testing"

	"github.com/recplan/cli/internal/app"
	"github.com/spf13/cobra"
)

func TestNewPipelineCmdBuildsFlagsFromDescriptor(t *testing.T) {
	desc := app.Descriptor{
		Name:        "demo",
		Description: "demo command",
		Flags: []app.Flag{
			{Name: "plan", Short: "p", Description: "plan path", HasValue: true, Required: true},
			{Name: "force", Short: "f", Description: "skip prompts"},
		},
	}
	c := newPipelineCmd(desc, nil)

	plan := c.Flags().Lookup("plan")
	if plan == nil || plan.Shorthand != "p" {
		t.Fatalf("plan flag = %+v", plan)
	}
	if req, ok := plan.Annotations[cobra.BashCompOneRequiredFlag]; !ok || req[0] != "true" {
		t.Error("plan flag not marked required")
	}
	force := c.Flags().Lookup("force")
	if force == nil || force.Value.Type() != "bool" {
		t.Fatalf("force flag = %+v", force)
	}
}

func TestCollectFlags(t *testing.T) {
	desc := app.Descriptor{
		Name: "demo",
		Flags: []app.Flag{
			{Name: "plan", HasValue: true},
			{Name: "force"},
		},
	}
	root := NewRoot()
	c := newPipelineCmd(desc, nil)
	root.AddCommand(c)

	if err := c.Flags().Set("plan", "x.json"); err != nil {
		t.Fatal(err)
	}
	if err := c.Flags().Set("force", "true"); err != nil {
		t.Fatal(err)
	}
	if err := root.PersistentFlags().Set("json", "true"); err != nil {
		t.Fatal(err)
	}

	flags := collectFlags(c, desc)
	if flags["plan"] != "x.json" || flags["force"] != "true" || flags["json"] != "true" {
		t.Errorf("flags = %v", flags)
	}
}

func TestDescriptorsRegistered(t *testing.T) {
	keys := map[string]bool{}
	for _, d := range app.Descriptors() {
		keys[d.Key()] = true
	}
	for _, want := range []string{"plan:split", "plan:show", "telemetry:status", "commands", "session"} {
		if !keys[want] {
			t.Errorf("descriptor %q not registered", want)
		}
	}
}

func TestWorkspaceDescriptorsMarked(t *testing.T) {
	byKey := map[string]app.Descriptor{}
	for _, d := range app.Descriptors() {
		byKey[d.Key()] = d
	}
	if !byKey["session"].RequiresWorkspace {
		t.Error("session descriptor should require a workspace")
	}
	if byKey["plan:split"].RequiresWorkspace {
		t.Error("plan:split operates on local files only")
	}
}
