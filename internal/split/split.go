package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recplan/cli/internal/app"
)

// Result summarizes one split run.
type Result struct {
	Manifest      string   `json:"manifest"`
	FilesSplit    int      `json:"filesSplit"`
	ChunksWritten int      `json:"chunksWritten"`
	Chunks        []string `json:"chunks,omitempty"`
}

// SplitManifest partitions every referenced data file holding more than
// limit records into contiguous chunks of exactly limit records (the last
// chunk may be smaller), writes each chunk beside its source, and replaces
// the manifest's file reference with the ordered chunk list. Files at or
// below the limit keep their original reference. The manifest is rewritten
// only when something changed, so a compliant plan is left byte-identical.
func SplitManifest(path string, limit int) (Result, error) {
	entries, err := LoadManifest(path)
	if err != nil {
		return Result{}, err
	}

	dir := filepath.Dir(path)
	res := Result{Manifest: path}
	changed := false

	for i, entry := range entries {
		var files []string
		for _, name := range entry.Files {
			df, err := LoadDataFile(filepath.Join(dir, name))
			if err != nil {
				return Result{}, app.NewError("split:errorBadDataFile", name, err)
			}
			if len(df.Records) <= limit {
				files = append(files, name)
				continue
			}
			chunks, err := writeChunks(dir, name, df, limit)
			if err != nil {
				return Result{}, err
			}
			files = append(files, chunks...)
			res.FilesSplit++
			res.ChunksWritten += len(chunks)
			res.Chunks = append(res.Chunks, chunks...)
			changed = true
		}
		entries[i].Files = files
	}

	if changed {
		if err := SaveManifest(path, entries); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// writeChunks writes the record chunks of one oversized file beside it and
// returns their names in record order.
func writeChunks(dir, name string, df DataFile, limit int) ([]string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	var names []string
	for i := 0; i*limit < len(df.Records); i++ {
		end := (i + 1) * limit
		if end > len(df.Records) {
			end = len(df.Records)
		}
		chunkName := fmt.Sprintf("%s_chunk_%d%s", base, i+1, ext)
		chunk := DataFile{Records: df.Records[i*limit : end]}
		if err := SaveDataFile(filepath.Join(dir, chunkName), chunk); err != nil {
			return nil, err
		}
		names = append(names, chunkName)
	}
	return names, nil
}

// Command is the plan:split business operation run through the invocation
// pipeline.
type Command struct{}

// Validate checks the required manifest flag before execution starts.
func (Command) Validate(ctx *app.Context) error {
	if ctx.Flag("plan") == "" {
		return app.NewError("split:errorNoManifest")
	}
	return nil
}

// PreExecuteMessage announces the scan in human mode.
func (Command) PreExecuteMessage(ctx *app.Context) string {
	return app.Message("split:preExecuteSplit", ctx.Flag("plan"))
}

// Execute resolves the manifest path from the plan flag and splits it.
func (Command) Execute(ctx *app.Context) (any, error) {
	path := ctx.Flag("plan")
	if _, err := os.Stat(path); err != nil {
		return nil, app.NewError("split:errorFileNotFound", path)
	}
	return SplitManifest(path, app.MaxRecordsPerFile)
}

// RenderResult reports the run as a one-line message.
func (Command) RenderResult(result any) app.RenderResult {
	res, ok := result.(Result)
	if !ok {
		return app.MessageResult("")
	}
	if res.FilesSplit == 0 {
		return app.MessageResult(app.Message("split:successNoSplit", app.MaxRecordsPerFile))
	}
	return app.MessageResult(app.Message("split:successSplit", res.FilesSplit, res.ChunksWritten))
}
