package cmd

import (
	"github.com/recplan/cli/internal/app"
	"github.com/spf13/cobra"
)

// sessionInfo is the serializable view of the active session.
type sessionInfo struct {
	Alias       string `json:"alias"`
	InstanceURL string `json:"instanceUrl,omitempty"`
	AuthMethod  string `json:"authMethod"`
}

var sessionDescriptor = app.Descriptor{
	Name:              "session",
	Description:       "Show the active session",
	RequiresWorkspace: true,
	Help: `Show the session the pipeline would run workspace commands against:
its alias, instance URL and authentication method. Fails with a
classified error when no session is active.

Examples:
  recplan session
  recplan session --json`,
}

func init() {
	app.RegisterDescriptor(sessionDescriptor)
}

// sessionCommand surfaces the session the pipeline already resolved during
// its session-wait stage; it never loads one itself.
type sessionCommand struct{}

func (sessionCommand) Execute(ctx *app.Context) (any, error) {
	auth := "password"
	if ctx.Session.TokenBased {
		auth = "token"
	}
	return sessionInfo{
		Alias:       ctx.Session.Alias,
		InstanceURL: ctx.Session.InstanceURL,
		AuthMethod:  auth,
	}, nil
}

func (sessionCommand) RenderResult(result any) app.RenderResult {
	info, ok := result.(sessionInfo)
	if !ok {
		return app.EmptyResult("")
	}
	rs := app.RowSet{
		Columns: []app.Column{
			{Key: "alias", Label: "Alias"},
			{Key: "instance", Label: "Instance URL"},
			{Key: "auth", Label: "Auth"},
		},
		Rows: []map[string]any{{
			"alias":    info.Alias,
			"instance": info.InstanceURL,
			"auth":     info.AuthMethod,
		}},
	}
	return app.RenderResult{Kind: app.RenderRowSet, Rows: rs}
}

func newSessionCmd() *cobra.Command {
	return newPipelineCmd(sessionDescriptor, sessionCommand{})
}
