package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mfedotov/brdforge/internal/model"
)

// Resolution is one conflict's answer in a resolutions file.
type Resolution struct {
	Select  string `yaml:"select"`
	Comment string `yaml:"comment,omitempty"`
}

// ResolutionsFile maps conflict ids to their resolutions.
type ResolutionsFile struct {
	Resolutions map[string]Resolution `yaml:"resolutions"`
}

// LoadResolutions reads a resolutions YAML file.
func LoadResolutions(path string) (*ResolutionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resolutions: %w", err)
	}
	var file ResolutionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse resolutions: %w", err)
	}
	return &file, nil
}

// WriteSkeleton writes a resolutions file template for the given conflicts,
// with each conflict's options listed in a comment block and an empty
// selection to fill in.
func WriteSkeleton(path string, conflicts []model.Conflict) error {
	skeleton := ResolutionsFile{Resolutions: make(map[string]Resolution, len(conflicts))}
	header := "# Fill in each conflict's select field with the authoritative fact id.\n"
	for _, c := range conflicts {
		header += fmt.Sprintf("#\n# %s [%s] %s\n", c.ID, c.Type, c.Description)
		header += fmt.Sprintf("#   %s: %s\n", c.FactA.ID, c.FactA.Content)
		header += fmt.Sprintf("#   %s: %s\n", c.FactB.ID, c.FactB.Content)
		skeleton.Resolutions[c.ID] = Resolution{}
	}

	body, err := yaml.Marshal(&skeleton)
	if err != nil {
		return fmt.Errorf("marshal skeleton: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), body...), 0o644); err != nil {
		return fmt.Errorf("write skeleton: %w", err)
	}
	return nil
}
