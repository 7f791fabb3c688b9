package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SourceList is the on-disk source configuration shape:
// a mapping from jurisdiction to its monitored URLs.
type SourceList map[string][]string

// LoadSourceList reads a {jurisdiction: [urls...]} YAML or JSON file and
// builds a populated registry. Kind is inferred from each URL and HTML
// sources get the default selector implicitly. Jurisdictions are walked in
// sorted order so registration order is deterministic.
func LoadSourceList(path string, logger zerolog.Logger) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "reading source list")
	}

	var list SourceList
	if isJSONFile(path) {
		err = json.Unmarshal(data, &list)
	} else {
		err = yaml.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, errorwrapper.WrapError(err, "parsing source list")
	}

	reg := NewRegistry(logger)

	jurisdictions := make([]string, 0, len(list))
	for j := range list {
		jurisdictions = append(jurisdictions, j)
	}
	sort.Strings(jurisdictions)

	for _, jurisdiction := range jurisdictions {
		tag := Slugify(jurisdiction, 30)
		for _, rawURL := range list[jurisdiction] {
			src := models.Source{
				URL:          rawURL,
				Jurisdiction: tag,
				Active:       true,
			}
			if _, err := reg.Add(src); err != nil {
				logger.Warn().Err(err).Str("url", rawURL).Str("jurisdiction", tag).Msg("Skipping invalid source entry")
			}
		}
	}

	if reg.Len() == 0 {
		return nil, errorwrapper.NewError("source list '%s' contains no valid entries", path)
	}

	logger.Info().Int("sources", reg.Len()).Str("path", path).Msg("Source list loaded")
	return reg, nil
}

func isJSONFile(path string) bool {
	return filepath.Ext(path) == ".json"
}
