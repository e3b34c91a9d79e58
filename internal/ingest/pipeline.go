package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/landing-insights/internal/config"
	"github.com/AngelCh415/landing-insights/internal/insights"
	"github.com/AngelCh415/landing-insights/internal/models"
	"github.com/AngelCh415/landing-insights/internal/store"
)

// Upload is one file handed to the pipeline, already decoded from its
// transport encoding. An empty FileType is inferred from FileName.
type Upload struct {
	Owner    string
	FileName string
	FileType models.FileType
	DataType models.DataType
	Content  []byte
}

type Result struct {
	BatchID            string                     `json:"batch_id"`
	FileName           string                     `json:"file_name,omitempty"`
	FileType           models.FileType            `json:"file_type"`
	DataType           models.DataType            `json:"data_type"`
	Delimiter          string                     `json:"delimiter"`
	RecordCount        int                        `json:"record_count"`
	Inserted           int                        `json:"inserted"`
	Updated            int                        `json:"updated"`
	UnknownColumns     []string                   `json:"unknown_columns"`
	Campaigns          []models.CampaignRecord    `json:"campaigns,omitempty"`
	Experiments        []models.ExperimentRecord  `json:"experiments,omitempty"`
	CampaignInsights   *models.CampaignInsights   `json:"campaign_insights,omitempty"`
	ExperimentInsights *models.ExperimentInsights `json:"experiment_insights,omitempty"`
}

// Pipeline runs reader, parser, reconciler and aggregator over one file
// at a time. The store is optional; without it results are only returned.
type Pipeline struct {
	c   HTTPClient
	rec *Reconciler
	st  *store.MemoryStore
	log *slog.Logger
	cfg config.Config
}

func NewPipeline(c HTTPClient, rec *Reconciler, st *store.MemoryStore, log *slog.Logger, cfg config.Config) *Pipeline {
	if rec == nil {
		rec = NewReconciler()
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.ConversionThreshold <= 0 {
		cfg.ConversionThreshold = insights.DefaultConversionThreshold
	}
	return &Pipeline{c: c, rec: rec, st: st, log: log, cfg: cfg}
}

// Fields returns the canonical fields the pipeline reconciles dt into,
// overrides included.
func (p *Pipeline) Fields(dt models.DataType) []string { return p.rec.Fields(dt) }

func (p *Pipeline) Process(ctx context.Context, up Upload) (*Result, error) {
	start := time.Now()
	res, err := p.process(ctx, up)
	status := "ok"
	if err != nil {
		status = "error"
	}
	uploadsTotal.WithLabelValues(string(up.DataType), status).Inc()
	processDuration.WithLabelValues(string(up.DataType)).Observe(time.Since(start).Seconds())
	if err != nil {
		p.log.WarnContext(ctx, "upload rejected",
			slog.String("file", up.FileName), slog.String("data_type", string(up.DataType)), slog.String("err", err.Error()))
		return nil, err
	}
	p.log.InfoContext(ctx, "upload processed",
		slog.String("batch_id", res.BatchID),
		slog.String("file", up.FileName),
		slog.String("data_type", string(res.DataType)),
		slog.Int("records", res.RecordCount),
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Duration("took", time.Since(start)))
	return res, nil
}

// ProcessAll handles uploads one after another and stops at the first
// fatal error, returning the results gathered so far.
func (p *Pipeline) ProcessAll(ctx context.Context, ups []Upload) ([]*Result, error) {
	out := make([]*Result, 0, len(ups))
	for _, up := range ups {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := p.Process(ctx, up)
		if err != nil {
			return out, fmt.Errorf("%s: %w", up.FileName, err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (p *Pipeline) process(ctx context.Context, up Upload) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if up.DataType != models.DataCampaigns && up.DataType != models.DataExperiments {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataType, up.DataType)
	}
	ft := up.FileType
	if ft == "" {
		ft = InferFileType(up.FileName, "")
	}
	tbl, err := ReadTable(up.Content, ft)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return nil, ErrInsufficientRows
	}

	res := &Result{
		BatchID:   uuid.NewString(),
		FileName:  up.FileName,
		FileType:  ft,
		DataType:  up.DataType,
		Delimiter: string(tbl.Delimiter()),
	}

	unknown := map[string]struct{}{}
	for row := range tbl.Rows() {
		for _, h := range p.rec.UnknownColumns(row, up.DataType) {
			unknown[h] = struct{}{}
		}
		switch up.DataType {
		case models.DataCampaigns:
			res.Campaigns = append(res.Campaigns, p.rec.Campaign(row))
		case models.DataExperiments:
			res.Experiments = append(res.Experiments, p.rec.Experiment(row))
		}
	}
	res.UnknownColumns = sortedKeys(unknown)
	if len(res.UnknownColumns) > 0 {
		unknownColumnsTotal.WithLabelValues(string(up.DataType)).Add(float64(len(res.UnknownColumns)))
		p.log.DebugContext(ctx, "dropped unknown columns", slog.Any("columns", res.UnknownColumns))
	}

	switch up.DataType {
	case models.DataCampaigns:
		res.RecordCount = len(res.Campaigns)
		sum := insights.SummarizeCampaigns(res.Campaigns, p.cfg.ConversionThreshold)
		res.CampaignInsights = &sum
		if p.st != nil && up.Owner != "" {
			res.Inserted, res.Updated = p.st.UpsertCampaigns(up.Owner, res.Campaigns)
		}
	case models.DataExperiments:
		res.RecordCount = len(res.Experiments)
		sum := insights.SummarizeExperiments(res.Experiments)
		res.ExperimentInsights = &sum
		if p.st != nil && up.Owner != "" {
			res.Inserted, res.Updated = p.st.UpsertExperiments(up.Owner, res.Experiments)
		}
	}
	rowsTotal.WithLabelValues(string(up.DataType)).Add(float64(res.RecordCount))
	return res, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
