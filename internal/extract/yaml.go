package extract

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/wordsim/internal/models"
)

// pairsFromYAML accepts either a bare list of pairs or a mapping with a
// "pairs" key, so a config's queries section can be reused as a pair file.
func pairsFromYAML(content []byte) ([]models.Pair, error) {
	var list []models.Pair
	if err := yaml.Unmarshal(content, &list); err != nil {
		var doc struct {
			Pairs []models.Pair `yaml:"pairs"`
		}
		if docErr := yaml.Unmarshal(content, &doc); docErr != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		list = doc.Pairs
	}
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return nil, fmt.Errorf("pair %d: %w", i+1, err)
		}
	}
	return list, nil
}
