package cmd

import (
	"github.com/recplan/cli/internal/app"
	"github.com/spf13/cobra"
)

// commandInfo is the serializable form of a registered descriptor.
type commandInfo struct {
	Name              string     `json:"name"`
	Topic             string     `json:"topic"`
	Description       string     `json:"description"`
	RequiresWorkspace bool       `json:"requiresWorkspace"`
	Flags             []flagInfo `json:"flags,omitempty"`
}

type flagInfo struct {
	Name        string `json:"name"`
	Short       string `json:"shortFlag,omitempty"`
	Description string `json:"description"`
	HasValue    bool   `json:"hasValue"`
	Required    bool   `json:"required"`
}

var commandsDescriptor = app.Descriptor{
	Name:        "commands",
	Description: "List registered commands and their flags",
}

func init() {
	app.RegisterDescriptor(commandsDescriptor)
}

// commandsCommand reports the descriptor registry through the pipeline, so
// even introspection output follows the dual-mode reporting rules.
type commandsCommand struct{}

func (commandsCommand) Execute(*app.Context) (any, error) {
	var out []commandInfo
	for _, d := range app.Descriptors() {
		info := commandInfo{
			Name:              d.Key(),
			Topic:             d.Topic,
			Description:       d.Description,
			RequiresWorkspace: d.RequiresWorkspace,
		}
		for _, f := range d.Flags {
			info.Flags = append(info.Flags, flagInfo{
				Name:        f.Name,
				Short:       f.Short,
				Description: f.Description,
				HasValue:    f.HasValue,
				Required:    f.Required,
			})
		}
		out = append(out, info)
	}
	return out, nil
}

func (commandsCommand) RenderResult(result any) app.RenderResult {
	infos, ok := result.([]commandInfo)
	if !ok || len(infos) == 0 {
		return app.EmptyResult("")
	}
	rs := app.RowSet{
		Columns: []app.Column{
			{Key: "name", Label: "Command"},
			{Key: "description", Label: "Description"},
		},
	}
	for _, info := range infos {
		rs.Rows = append(rs.Rows, map[string]any{
			"name":        info.Name,
			"description": info.Description,
		})
	}
	return app.RenderResult{Kind: app.RenderRowSet, Rows: rs}
}

func newCommandsCmd() *cobra.Command {
	return newPipelineCmd(commandsDescriptor, commandsCommand{})
}
