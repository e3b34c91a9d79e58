package ingest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides holds extra synonyms per canonical field, loaded from YAML:
//
//	campaigns:
//	  sessions: ["Sitzungen", "visitas"]
//	experiments:
//	  uplift_relative: ["Lift %"]
//
// Extra synonyms always rank after the built-in ones.
type Overrides struct {
	Campaigns   map[string][]string `yaml:"campaigns"`
	Experiments map[string][]string `yaml:"experiments"`
}

func LoadSynonymOverrides(r io.Reader) (Overrides, error) {
	var o Overrides
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return Overrides{}, fmt.Errorf("decode synonyms: %w", err)
	}
	if err := checkFields(o.Campaigns, fieldNames(CampaignSynonyms)); err != nil {
		return Overrides{}, fmt.Errorf("campaigns: %w", err)
	}
	if err := checkFields(o.Experiments, fieldNames(ExperimentSynonyms)); err != nil {
		return Overrides{}, fmt.Errorf("experiments: %w", err)
	}
	return o, nil
}

// LoadSynonymFile is LoadSynonymOverrides over a file; an empty path
// means no overrides.
func LoadSynonymFile(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Overrides{}, err
	}
	defer f.Close()
	return LoadSynonymOverrides(f)
}

func checkFields(extra map[string][]string, fields []string) error {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}
	for f := range extra {
		if _, ok := known[f]; !ok {
			return fmt.Errorf("unknown field %q", f)
		}
	}
	return nil
}
