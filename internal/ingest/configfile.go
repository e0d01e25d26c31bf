package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// toolConfig is the configuration document the external packer tool reads.
// Field names follow the tool's JSON schema.
type toolConfig struct {
	Output   outputConfig   `json:"output"`
	Include  string         `json:"include,omitempty"`
	Security securityConfig `json:"security"`
	Ignore   ignoreConfig   `json:"ignore"`
}

type outputConfig struct {
	FilePath         string `json:"filePath"`
	Style            string `json:"style"`
	Compress         bool   `json:"compress"`
	RemoveComments   bool   `json:"removeComments"`
	RemoveEmptyLines bool   `json:"removeEmptyLines"`
}

type securityConfig struct {
	EnableSecurityCheck bool `json:"enableSecurityCheck"`
}

type ignoreConfig struct {
	UseGitignore       bool `json:"useGitignore"`
	UseDefaultPatterns bool `json:"useDefaultPatterns"`
}

// Synthesizer writes per-request tool-config documents into a scratch
// directory. Safe under concurrent requests: every document gets a unique
// random name, so no coordination is needed.
type Synthesizer struct {
	dir string
}

// NewSynthesizer creates a synthesizer writing into dir.
func NewSynthesizer(dir string) *Synthesizer {
	return &Synthesizer{dir: dir}
}

// Synthesize builds the tool-config document for req, pointing the tool's
// output at outputPath, and writes it under a freshly generated unique name.
// Returns the config artifact path.
//
// Structural defaults: plain style for full-text mode, xml for
// selected-files, security scanning disabled, gitignore-aware default ignore
// rules. Caller transform booleans are overlaid only when explicitly set.
func (s *Synthesizer) Synthesize(req *Request, outputPath string) (string, error) {
	doc := toolConfig{
		Output: outputConfig{
			FilePath: outputPath,
			Style:    styleFor(req.Mode),
		},
		Security: securityConfig{EnableSecurityCheck: false},
		Ignore: ignoreConfig{
			UseGitignore:       true,
			UseDefaultPatterns: true,
		},
	}

	if req.Transform.Compress != nil {
		doc.Output.Compress = *req.Transform.Compress
	}
	if req.Transform.RemoveComments != nil {
		doc.Output.RemoveComments = *req.Transform.RemoveComments
	}
	if req.Transform.RemoveEmptyLines != nil {
		doc.Output.RemoveEmptyLines = *req.Transform.RemoveEmptyLines
	}

	if req.Mode == ModeSelectedFiles {
		// Verbatim pass-through: no re-splitting or pattern validation.
		doc.Include = req.Selection
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create config dir %s: %v", ErrScratchIO, s.dir, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: marshal tool config: %v", ErrScratchIO, err)
	}

	// uuid v4 is backed by crypto/rand, which is what makes the shared
	// scratch directory collision-free across concurrent requests.
	path := filepath.Join(s.dir, fmt.Sprintf("ingest-%s.config.json", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: write tool config %s: %v", ErrScratchIO, path, err)
	}

	return path, nil
}

// styleFor maps an output mode to the tool's output style.
func styleFor(mode OutputMode) string {
	if mode == ModeSelectedFiles {
		return "xml"
	}
	return "plain"
}
