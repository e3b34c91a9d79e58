package ingest

import (
	"strings"
	"time"

	"github.com/AngelCh415/landing-insights/internal/models"
)

// Reconciler maps normalized rows onto the canonical record types.
// It is safe for concurrent use once built.
type Reconciler struct {
	campaigns   []FieldSpec[models.CampaignRecord]
	experiments []FieldSpec[models.ExperimentRecord]
	known       map[models.DataType]map[string]struct{}
	now         func() time.Time
}

type ReconcilerOption func(*Reconciler)

// WithClock overrides the date used for missing campaign/start dates.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) { r.now = now }
}

// WithOverrides appends extra synonyms after the built-in ones.
func WithOverrides(o Overrides) ReconcilerOption {
	return func(r *Reconciler) {
		r.campaigns = extend(r.campaigns, o.Campaigns)
		r.experiments = extend(r.experiments, o.Experiments)
	}
}

func NewReconciler(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		campaigns:   CampaignSynonyms,
		experiments: ExperimentSynonyms,
		now:         time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	r.known = map[models.DataType]map[string]struct{}{
		models.DataCampaigns:   synonymSet(r.campaigns),
		models.DataExperiments: synonymSet(r.experiments),
	}
	return r
}

func (r *Reconciler) Campaign(row Row) models.CampaignRecord {
	var rec models.CampaignRecord
	apply(&rec, r.campaigns, indexRow(row), r.today())
	return rec
}

func (r *Reconciler) Experiment(row Row) models.ExperimentRecord {
	var rec models.ExperimentRecord
	apply(&rec, r.experiments, indexRow(row), r.today())
	return rec
}

// UnknownColumns lists the headers of row no canonical field accepts.
func (r *Reconciler) UnknownColumns(row Row, dt models.DataType) []string {
	known := r.known[dt]
	var out []string
	for _, h := range row.Headers() {
		if _, ok := known[compactKey(h)]; !ok {
			out = append(out, h)
		}
	}
	return out
}

// Fields returns the canonical field names of a schema in precedence order.
func (r *Reconciler) Fields(dt models.DataType) []string {
	if dt == models.DataExperiments {
		return fieldNames(r.experiments)
	}
	return fieldNames(r.campaigns)
}

func (r *Reconciler) today() string { return r.now().Format("2006-01-02") }

func apply[T any](rec *T, specs []FieldSpec[T], values map[string]string, today string) {
	for _, fs := range specs {
		v, ok := firstMatch(values, fs.Synonyms)
		if !ok {
			v = fs.Default
			if fs.Today {
				v = today
			}
		}
		fs.set(rec, v)
	}
}

func firstMatch(values map[string]string, synonyms []string) (string, bool) {
	for _, s := range synonyms {
		if v := strings.TrimSpace(values[s]); v != "" {
			return v, true
		}
	}
	return "", false
}

// indexRow keys each non-empty value by its compacted header; the first
// column wins when several compact to the same key.
func indexRow(row Row) map[string]string {
	out := make(map[string]string, len(row))
	for _, c := range row {
		if strings.TrimSpace(c.Value) == "" {
			continue
		}
		k := compactKey(c.Header)
		if _, ok := out[k]; !ok {
			out[k] = c.Value
		}
	}
	return out
}

// compactKey collapses runs of '_' and trims them at both ends, so unit
// decorations like "(%)" or "($)" drop out of a normalized header.
func compactKey(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	prev := true
	for i := 0; i < len(h); i++ {
		c := h[i]
		if c == '_' {
			if prev {
				continue
			}
			prev = true
		} else {
			prev = false
		}
		b.WriteByte(c)
	}
	return strings.TrimRight(b.String(), "_")
}

func synonymSet[T any](specs []FieldSpec[T]) map[string]struct{} {
	out := map[string]struct{}{}
	for _, fs := range specs {
		for _, s := range fs.Synonyms {
			out[s] = struct{}{}
		}
	}
	return out
}

func fieldNames[T any](specs []FieldSpec[T]) []string {
	out := make([]string, len(specs))
	for i, fs := range specs {
		out[i] = fs.Field
	}
	return out
}

func extend[T any](specs []FieldSpec[T], extra map[string][]string) []FieldSpec[T] {
	if len(extra) == 0 {
		return specs
	}
	out := make([]FieldSpec[T], len(specs))
	for i, fs := range specs {
		syn := append([]string(nil), fs.Synonyms...)
		for _, s := range extra[fs.Field] {
			syn = append(syn, compactKey(NormalizeHeader(s)))
		}
		fs.Synonyms = syn
		out[i] = fs
	}
	return out
}
