package ingest

import (
	"fmt"
	"os"
)

// Materialize verifies the output artifact exists with content and loads it.
//
// An existing-but-empty artifact is ErrEmptyResult even when the tool exited
// zero: a successful exit does not by itself guarantee a usable result.
// Outputs are repository-sized text dumps, so a full in-memory read is fine
// at this scale.
func Materialize(outputPath string) (*Result, error) {
	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: stat output artifact %s: %v", ErrScratchIO, outputPath, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, outputPath)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read output artifact %s: %v", ErrScratchIO, outputPath, err)
	}

	return &Result{
		OutputPath: outputPath,
		Content:    string(content),
	}, nil
}
