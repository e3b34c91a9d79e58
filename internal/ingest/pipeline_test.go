package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/landing-insights/internal/config"
	"github.com/AngelCh415/landing-insights/internal/models"
	"github.com/AngelCh415/landing-insights/internal/store"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestPipeline(st *store.MemoryStore, cfg config.Config) *Pipeline {
	return NewPipeline(nil, NewReconciler(WithClock(fixedClock())), st, discardLogger(), cfg)
}

const campaignsCSV = `Campaign Name,Date,Source,Sessions,Conversions,Conversion Rate,Spend,Cost per Conversion,Color
Summer Promo,2024-05-15,google,1000,50,5,500,10,red
Summer Promo,2024-05-16,facebook,2000,40,2,800,20,blue


Winter Sale,2024-12-01,google,500,5,1,100,20,green
`

func TestProcessCampaigns(t *testing.T) {
	st := store.NewMemoryStore()
	p := newTestPipeline(st, config.Config{})

	before := testutil.ToFloat64(rowsTotal.WithLabelValues("campaigns"))
	res, err := p.Process(context.Background(), Upload{
		Owner: "u1", FileName: "history.csv", DataType: models.DataCampaigns, Content: []byte(campaignsCSV),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, models.FileCSV, res.FileType)
	assert.Equal(t, ",", res.Delimiter)
	assert.Equal(t, 3, res.RecordCount)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, []string{"color"}, res.UnknownColumns)
	require.Len(t, res.Campaigns, 3)
	assert.Empty(t, res.Experiments)
	assert.Nil(t, res.ExperimentInsights)

	sum := res.CampaignInsights
	require.NotNil(t, sum)
	assert.Equal(t, 2.67, sum.AverageConversionRate)
	assert.Equal(t, 1400.0, sum.TotalSpend)
	assert.Equal(t, "google", sum.TopSource)
	assert.Equal(t, 3.0, testutil.ToFloat64(rowsTotal.WithLabelValues("campaigns"))-before)

	// second upload of the same rows replaces them
	res, err = p.Process(context.Background(), Upload{
		Owner: "u1", FileName: "history.csv", DataType: models.DataCampaigns, Content: []byte(campaignsCSV),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 3, res.Updated)
	assert.Len(t, st.Campaigns("u1", nil), 3)
}

func TestProcessExperimentsTSV(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	text := "Experiment\tSignificance\tUplift\tWinner\n" +
		"Hero\tyes\t10\tVariant B\n" +
		"Form\tno\t-2\tControl\n"
	res, err := p.Process(context.Background(), Upload{
		FileName: "tests.tsv", DataType: models.DataExperiments, Content: []byte(text),
	})
	require.NoError(t, err)
	assert.Equal(t, "\t", res.Delimiter)
	assert.Equal(t, models.FileTSV, res.FileType)
	require.Len(t, res.Experiments, 2)
	require.NotNil(t, res.ExperimentInsights)
	assert.Equal(t, 1, res.ExperimentInsights.SignificantCount)
	assert.Equal(t, 4.0, res.ExperimentInsights.AverageUplift)
	assert.Equal(t, 0.5, res.ExperimentInsights.WinRate)
	assert.Zero(t, res.Inserted)
}

func TestProcessSpreadsheet(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	content := xlsxBytes(t, [][]any{
		{"Campaign Name", "Date", "Sessions", "Comments; reviewer; status; region"},
		{"Spring Launch", "2024-03-01", 1200, "first line\nsecond line"},
		{"Fall Push", "2024-09-01", 800, "done"},
	})
	res, err := p.Process(context.Background(), Upload{
		FileName: "q1.xlsx", DataType: models.DataCampaigns, Content: content,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FileExcel, res.FileType)
	assert.Equal(t, ",", res.Delimiter)
	assert.Equal(t, 2, res.RecordCount)
	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, "Spring Launch", res.Campaigns[0].CampaignName)
	assert.Equal(t, 1200, res.Campaigns[0].Sessions)
	assert.Equal(t, "Fall Push", res.Campaigns[1].CampaignName)
	assert.Equal(t, "2024-09-01", res.Campaigns[1].CampaignDate)
}

func TestProcessFatalErrors(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	cases := []struct {
		name string
		up   Upload
		want error
	}{
		{"empty", Upload{DataType: models.DataCampaigns}, ErrEmptyContent},
		{"header only", Upload{DataType: models.DataCampaigns, Content: []byte("Name,Date\n\n")}, ErrInsufficientRows},
		{"binary", Upload{DataType: models.DataCampaigns, Content: []byte{0x00, 0x01, 0xff}}, ErrNotText},
		{"image", Upload{FileName: "x.png", DataType: models.DataCampaigns, Content: []byte("PNG")}, ErrUnsupportedFileType},
		{"data type", Upload{DataType: "orders", Content: []byte("a\n1")}, ErrUnknownDataType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := p.Process(context.Background(), c.up)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestProcessRowWithoutMatchesKeepsDefaults(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	res, err := p.Process(context.Background(), Upload{
		DataType: models.DataCampaigns, Content: []byte("Foo,Bar\n1,2\n"),
	})
	require.NoError(t, err)
	require.Len(t, res.Campaigns, 1)
	assert.Equal(t, "Untitled Campaign", res.Campaigns[0].CampaignName)
	assert.Equal(t, "2025-03-14", res.Campaigns[0].CampaignDate)
}

func TestProcessAllStopsAtFirstFatal(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	ups := []Upload{
		{FileName: "a.csv", DataType: models.DataCampaigns, Content: []byte("Name\nA\n")},
		{FileName: "b.csv", DataType: models.DataCampaigns, Content: []byte("Name\n")},
		{FileName: "c.csv", DataType: models.DataCampaigns, Content: []byte("Name\nC\n")},
	}
	res, err := p.ProcessAll(context.Background(), ups)
	require.ErrorIs(t, err, ErrInsufficientRows)
	assert.Contains(t, err.Error(), "b.csv")
	require.Len(t, res, 1)
	assert.Equal(t, "A", res[0].Campaigns[0].CampaignName)
}

func TestProcessCancelledContext(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Process(ctx, Upload{DataType: models.DataCampaigns, Content: []byte("Name\nA\n")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineFields(t *testing.T) {
	p := newTestPipeline(nil, config.Config{})
	fields := p.Fields(models.DataCampaigns)
	require.Len(t, fields, len(CampaignSynonyms))
	assert.Equal(t, "campaign_name", fields[0])
	assert.Contains(t, fields, "primary_conversion_rate")
	assert.Len(t, p.Fields(models.DataExperiments), len(ExperimentSynonyms))
}
