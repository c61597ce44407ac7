package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/hasanfardous/startup-wp/internal/model"
)

// LoadWidgets reads widget placements: a map of widget area id to widget list.
// A missing file means every area is empty.
func LoadWidgets(path string) (map[string][]model.Widget, error) {
	widgets := make(map[string][]model.Widget)
	if path == "" {
		return widgets, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return widgets, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading widgets file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &widgets); err != nil {
		return nil, fmt.Errorf("error unmarshalling widgets file %s: %w", path, err)
	}
	for area, list := range widgets {
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = fmt.Sprintf("%s-%d", list[i].Type, i+1)
			}
		}
		widgets[area] = list
	}
	return widgets, nil
}
