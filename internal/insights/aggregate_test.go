package insights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/landing-insights/internal/models"
)

func TestSummarizeCampaignsEmpty(t *testing.T) {
	sum := SummarizeCampaigns(nil, DefaultConversionThreshold)
	assert.Zero(t, sum.AverageConversionRate)
	assert.Zero(t, sum.TotalSpend)
	assert.Zero(t, sum.AverageCostPerConversion)
	assert.Empty(t, sum.TopSource)
	assert.NotNil(t, sum.TopPerformingChannels)
	assert.Empty(t, sum.TopPerformingChannels)
	assert.Equal(t, RecommendOptimize, sum.Recommendation)
}

func TestSummarizeCampaigns(t *testing.T) {
	recs := []models.CampaignRecord{
		{TrafficSource: "email", Sessions: 100, PrimaryConversions: 10, PrimaryConversionRate: 10, TotalSpend: 50, CostPerConversion: 5},
		{TrafficSource: "google", Sessions: 1000, PrimaryConversions: 20, PrimaryConversionRate: 2, TotalSpend: 400.10, CostPerConversion: 20},
		{TrafficSource: "google", Sessions: 1000, PrimaryConversions: 30, PrimaryConversionRate: 3, TotalSpend: 300.20, CostPerConversion: 10},
		{UTMSource: "bing", Sessions: 0, PrimaryConversions: 3, PrimaryConversionRate: 1, TotalSpend: 10, CostPerConversion: 3},
		{Sessions: 200, PrimaryConversions: 8, PrimaryConversionRate: 4},
	}
	sum := SummarizeCampaigns(recs, DefaultConversionThreshold)

	assert.Equal(t, 5, sum.TotalRecords)
	assert.Equal(t, 2300, sum.TotalSessions)
	assert.Equal(t, 71, sum.TotalConversions)
	assert.Equal(t, 4.0, sum.AverageConversionRate)
	assert.Equal(t, 760.3, sum.TotalSpend)
	assert.Equal(t, 7.6, sum.AverageCostPerConversion)
	assert.Equal(t, "google", sum.TopSource)
	assert.Equal(t, RecommendScale, sum.Recommendation)

	require.Len(t, sum.TopPerformingChannels, 3)
	assert.Equal(t, "email", sum.TopPerformingChannels[0].Source)
	assert.Equal(t, 10.0, sum.TopPerformingChannels[0].ConversionRate)
	assert.Equal(t, "unknown", sum.TopPerformingChannels[1].Source)
	assert.Equal(t, 4.0, sum.TopPerformingChannels[1].ConversionRate)
	assert.Equal(t, "google", sum.TopPerformingChannels[2].Source)
	assert.Equal(t, 2.5, sum.TopPerformingChannels[2].ConversionRate)
	assert.Equal(t, 2000, sum.TopPerformingChannels[2].Sessions)
}

func TestTopSourceTieFirstSeen(t *testing.T) {
	recs := []models.CampaignRecord{
		{TrafficSource: "email"}, {TrafficSource: "google"}, {TrafficSource: "google"}, {TrafficSource: "email"},
	}
	assert.Equal(t, "email", SummarizeCampaigns(recs, 3).TopSource)
}

func TestChannelRateTiesKeepFirstSeen(t *testing.T) {
	recs := []models.CampaignRecord{
		{TrafficSource: "a"}, {TrafficSource: "b"}, {TrafficSource: "c"}, {TrafficSource: "d"},
	}
	sum := SummarizeCampaigns(recs, 3)
	require.Len(t, sum.TopPerformingChannels, 3)
	assert.Equal(t, "a", sum.TopPerformingChannels[0].Source)
	assert.Equal(t, "c", sum.TopPerformingChannels[2].Source)
	assert.Zero(t, sum.TopPerformingChannels[0].ConversionRate)
}

func TestCampaignRecommendationThreshold(t *testing.T) {
	at := []models.CampaignRecord{{PrimaryConversionRate: 3}}
	assert.Equal(t, RecommendOptimize, SummarizeCampaigns(at, 3).Recommendation)
	above := []models.CampaignRecord{{PrimaryConversionRate: 3.01}}
	assert.Equal(t, RecommendScale, SummarizeCampaigns(above, 3).Recommendation)
	assert.Equal(t, RecommendOptimize, SummarizeCampaigns(above, 5).Recommendation)
}

func TestSummarizeExperimentsEmpty(t *testing.T) {
	sum := SummarizeExperiments(nil)
	assert.Equal(t, models.ExperimentInsights{Recommendation: RecommendExperimentsWeak}, sum)
}

func TestSummarizeExperiments(t *testing.T) {
	recs := []models.ExperimentRecord{
		{StatisticalSignificance: true, UpliftRelative: 12.5, WinningVariant: "Variant B"},
		{StatisticalSignificance: true, UpliftRelative: 4, WinningVariant: "B"},
		{StatisticalSignificance: false, UpliftRelative: -1.5, WinningVariant: "Control"},
		{StatisticalSignificance: true, UpliftRelative: 0, WinningVariant: "variant c"},
	}
	sum := SummarizeExperiments(recs)
	assert.Equal(t, 4, sum.TotalExperiments)
	assert.Equal(t, 3, sum.SignificantCount)
	assert.Equal(t, 3.75, sum.AverageUplift)
	assert.Equal(t, 0.5, sum.WinRate)
	assert.Equal(t, RecommendExperimentsHealthy, sum.Recommendation)

	half := recs[1:3]
	assert.Equal(t, RecommendExperimentsWeak, SummarizeExperiments(half).Recommendation)
}

func TestRoundNegative(t *testing.T) {
	assert.Equal(t, -1.24, round2(-1.2351))
	assert.Equal(t, 1.24, round2(1.2351))
}

func TestRoundLargeValues(t *testing.T) {
	assert.Equal(t, 1e17, round2(1e17))
	assert.Equal(t, -1e17, round2(-1e17))
	assert.Equal(t, math.MaxFloat64, round3(math.MaxFloat64))
	assert.Equal(t, 3e12, round2(3e12))
}
