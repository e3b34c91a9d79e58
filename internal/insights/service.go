package insights

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AngelCh415/landing-insights/internal/models"
	"github.com/AngelCh415/landing-insights/internal/store"
)

// Service answers record and insight queries over stored batches.
type Service struct {
	st        *store.MemoryStore
	threshold float64
}

func NewService(st *store.MemoryStore, threshold float64) *Service {
	if threshold <= 0 {
		threshold = DefaultConversionThreshold
	}
	return &Service{st: st, threshold: threshold}
}

func (s *Service) Threshold() float64 { return s.threshold }

// Owners lists every owner holding campaigns or experiments, sorted.
func (s *Service) Owners() []string { return s.st.Owners() }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func csvSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range strings.Split(s, ",") {
		p = norm(p)
		if p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

// date layouts seen in exported reports
var dateLayouts = []string{"2006-01-02", "1/2/2006", "2006/01/02", "2-Jan-2006", time.RFC3339}

// ParseDate reads the opaque campaign date strings the reconciler carries.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *Service) campaignFilter(v url.Values) func(models.CampaignRecord) bool {
	from, hasFrom := ParseDate(v.Get("from"))
	to, hasTo := ParseDate(v.Get("to"))
	srcSet := csvSet(v.Get("source"))
	return func(r models.CampaignRecord) bool {
		if len(srcSet) > 0 {
			if _, ok := srcSet[norm(r.Source())]; !ok {
				return false
			}
		}
		if !hasFrom && !hasTo {
			return true
		}
		d, ok := ParseDate(r.CampaignDate)
		if !ok {
			return false
		}
		if hasFrom && d.Before(from) {
			return false
		}
		if hasTo && d.After(to) {
			return false
		}
		return true
	}
}

func (s *Service) QueryCampaigns(owner string, v url.Values) []models.CampaignRecord {
	rows := s.st.Campaigns(owner, s.campaignFilter(v))
	limit, offset := clampLimitOffset(atoiDef(v.Get("limit"), 100), atoiDef(v.Get("offset"), 0), len(rows))
	return paginate(rows, limit, offset)
}

func (s *Service) QueryExperiments(owner string, v url.Values) []models.ExperimentRecord {
	rows := s.st.Experiments(owner)
	limit, offset := clampLimitOffset(atoiDef(v.Get("limit"), 100), atoiDef(v.Get("offset"), 0), len(rows))
	return paginate(rows, limit, offset)
}

func (s *Service) CampaignInsights(owner string, v url.Values) models.CampaignInsights {
	return SummarizeCampaigns(s.st.Campaigns(owner, s.campaignFilter(v)), s.threshold)
}

func (s *Service) ExperimentInsights(owner string) models.ExperimentInsights {
	return SummarizeExperiments(s.st.Experiments(owner))
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	} // tope sano
	if offset > n {
		offset = n
	}
	return limit, offset
}
