package split

import (
	"os"
	"path/filepath"

	"github.com/recplan/cli/internal/app"
)

// FileInfo is one referenced data file with its record count.
type FileInfo struct {
	Entry   int    `json:"entry"`
	File    string `json:"file"`
	Records int    `json:"records"`
}

// ShowResult lists the manifest's files and record counts.
type ShowResult struct {
	Manifest string     `json:"manifest"`
	Files    []FileInfo `json:"files"`
}

// ShowCommand is the plan:show operation: report per-file record counts for
// a manifest.
type ShowCommand struct{}

func (ShowCommand) Validate(ctx *app.Context) error {
	if ctx.Flag("plan") == "" {
		return app.NewError("split:errorNoManifest")
	}
	return nil
}

func (ShowCommand) Execute(ctx *app.Context) (any, error) {
	path := ctx.Flag("plan")
	if _, err := os.Stat(path); err != nil {
		return nil, app.NewError("split:errorFileNotFound", path)
	}
	entries, err := LoadManifest(path)
	if err != nil {
		return nil, app.NewError("split:errorBadManifest", path, err)
	}

	res := ShowResult{Manifest: path}
	dir := filepath.Dir(path)
	for i, entry := range entries {
		for _, name := range entry.Files {
			df, err := LoadDataFile(filepath.Join(dir, name))
			if err != nil {
				return nil, app.NewError("split:errorBadDataFile", name, err)
			}
			res.Files = append(res.Files, FileInfo{Entry: i, File: name, Records: len(df.Records)})
		}
	}
	return res, nil
}

// RenderResult shows the files as a table.
func (ShowCommand) RenderResult(result any) app.RenderResult {
	res, ok := result.(ShowResult)
	if !ok || len(res.Files) == 0 {
		return app.EmptyResult(app.Message("split:emptyPlan"))
	}
	rs := app.RowSet{
		Columns: []app.Column{
			{Key: "entry", Label: "Entry"},
			{Key: "file", Label: "File"},
			{Key: "records", Label: "Records"},
		},
	}
	for _, f := range res.Files {
		rs.Rows = append(rs.Rows, map[string]any{
			"entry":   f.Entry,
			"file":    f.File,
			"records": f.Records,
		})
	}
	return app.RenderResult{Kind: app.RenderRowSet, Rows: rs}
}

// EmptyResultMessage overrides the no-results text for an empty plan.
func (ShowCommand) EmptyResultMessage(string) string {
	return app.Message("split:emptyPlan")
}
