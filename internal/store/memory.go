package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/AngelCh415/landing-insights/internal/models"
)

// CampaignKey identifies a campaign row within one owner's data.
type CampaignKey struct {
	Owner         string
	CampaignName  string
	CampaignDate  string
	TrafficSource string
}

type ExperimentKey struct {
	Owner          string
	ExperimentName string
	StartDate      string
}

type MemoryStore struct {
	mu          sync.RWMutex
	campaigns   map[CampaignKey]models.CampaignRecord
	experiments map[ExperimentKey]models.ExperimentRecord
	// orden de llegada, para respuestas deterministas
	campaignOrder   []CampaignKey
	experimentOrder []ExperimentKey
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		campaigns:   make(map[CampaignKey]models.CampaignRecord),
		experiments: make(map[ExperimentKey]models.ExperimentRecord),
	}
}

// UpsertCampaigns stores recs under owner, replacing rows with the same
// key. It returns how many rows were new and how many replaced.
func (s *MemoryStore) UpsertCampaigns(owner string, recs []models.CampaignRecord) (inserted, updated int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recs {
		k := CampaignKey{Owner: owner, CampaignName: norm(r.CampaignName), CampaignDate: r.CampaignDate, TrafficSource: norm(r.TrafficSource)}
		if _, ok := s.campaigns[k]; ok {
			updated++
		} else {
			inserted++
			s.campaignOrder = append(s.campaignOrder, k)
		}
		s.campaigns[k] = r
	}
	return inserted, updated
}

func (s *MemoryStore) UpsertExperiments(owner string, recs []models.ExperimentRecord) (inserted, updated int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recs {
		k := ExperimentKey{Owner: owner, ExperimentName: norm(r.ExperimentName), StartDate: r.StartDate}
		if _, ok := s.experiments[k]; ok {
			updated++
		} else {
			inserted++
			s.experimentOrder = append(s.experimentOrder, k)
		}
		s.experiments[k] = r
	}
	return inserted, updated
}

// Campaigns returns owner's rows in insertion order; f may be nil.
func (s *MemoryStore) Campaigns(owner string, f func(models.CampaignRecord) bool) []models.CampaignRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.CampaignRecord{}
	for _, k := range s.campaignOrder {
		if k.Owner != owner {
			continue
		}
		r := s.campaigns[k]
		if f == nil || f(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *MemoryStore) Experiments(owner string) []models.ExperimentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ExperimentRecord{}
	for _, k := range s.experimentOrder {
		if k.Owner == owner {
			out = append(out, s.experiments[k])
		}
	}
	return out
}

func (s *MemoryStore) Owners() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for k := range s.campaigns {
		seen[k.Owner] = struct{}{}
	}
	for k := range s.experiments {
		seen[k.Owner] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
