package cmd

import (
	"github.com/recplan/cli/internal/app"
	"github.com/recplan/cli/internal/split"
	"github.com/spf13/cobra"
)

var splitDescriptor = app.Descriptor{
	Name:        "split",
	Topic:       "plan",
	Description: "Split oversized record files referenced by a plan manifest",
	Help: `Split every record file referenced by the manifest that holds more
than 200 records into contiguous 200-record chunks, written beside the
source file. The manifest is rewritten in place so each oversized file
reference becomes the ordered list of its chunks. Files at or below the
limit are left untouched.

Examples:
  recplan plan split --plan data/plan.json
  recplan plan split -p data/plan.json --json`,
	Flags: []app.Flag{
		{Name: "plan", Short: "p", Description: "path to the plan manifest", HasValue: true, Required: true},
	},
}

var showDescriptor = app.Descriptor{
	Name:        "show",
	Topic:       "plan",
	Description: "Show the data files referenced by a plan manifest",
	Help: `List every data file referenced by the manifest together with its
record count.

Examples:
  recplan plan show --plan data/plan.json`,
	Flags: []app.Flag{
		{Name: "plan", Short: "p", Description: "path to the plan manifest", HasValue: true, Required: true},
	},
}

func init() {
	app.RegisterDescriptor(splitDescriptor)
	app.RegisterDescriptor(showDescriptor)
}

func newPlanCmd() *cobra.Command {
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Work with record-plan manifests",
	}
	plan.AddCommand(
		newPipelineCmd(splitDescriptor, split.Command{}),
		newPipelineCmd(showDescriptor, split.ShowCommand{}),
	)
	return plan
}
