package insights

import (
	"math"
	"sort"
	"strings"

	"github.com/AngelCh415/landing-insights/internal/models"
)

// DefaultConversionThreshold is the average conversion rate (percent)
// above which campaigns are considered ready to scale.
const DefaultConversionThreshold = 3.0

const (
	RecommendScale    = "Strong performance: scale successful campaigns and increase budget on top channels."
	RecommendOptimize = "Optimization needed: review landing page content, CTAs and targeting to lift conversion rates."

	RecommendExperimentsHealthy = "Testing program is producing reliable wins: roll out winning variants and keep iterating."
	RecommendExperimentsWeak    = "Few experiments reached significance: increase sample sizes or test bolder changes."
)

const topChannels = 3

// SummarizeCampaigns aggregates a campaign batch. An empty batch yields a
// zero summary.
func SummarizeCampaigns(recs []models.CampaignRecord, threshold float64) models.CampaignInsights {
	out := models.CampaignInsights{
		TotalRecords:          len(recs),
		TopPerformingChannels: []models.ChannelPerformance{},
	}
	if len(recs) == 0 {
		out.Recommendation = recommendCampaigns(0, threshold)
		return out
	}

	var rateSum, cpcSum float64
	groups := map[string]*models.ChannelPerformance{}
	counts := map[string]int{}
	var order []string // primera aparición
	for _, r := range recs {
		rateSum += r.PrimaryConversionRate
		cpcSum += r.CostPerConversion
		out.TotalSpend += r.TotalSpend
		out.TotalSessions += r.Sessions
		out.TotalConversions += r.PrimaryConversions

		src := r.Source()
		g, ok := groups[src]
		if !ok {
			g = &models.ChannelPerformance{Source: src}
			groups[src] = g
			order = append(order, src)
		}
		g.Sessions += r.Sessions
		g.Conversions += r.PrimaryConversions
		counts[src]++
	}

	n := float64(len(recs))
	out.AverageConversionRate = round2(rateSum / n)
	out.AverageCostPerConversion = round2(cpcSum / n)
	out.TotalSpend = round2(out.TotalSpend)

	best := 0
	for _, src := range order {
		if counts[src] > best {
			best = counts[src]
			out.TopSource = src
		}
	}

	channels := make([]models.ChannelPerformance, 0, len(order))
	for _, src := range order {
		g := *groups[src]
		g.ConversionRate = round2(safeDiv(float64(g.Conversions), float64(g.Sessions)) * 100)
		channels = append(channels, g)
	}
	sort.SliceStable(channels, func(i, j int) bool { return channels[i].ConversionRate > channels[j].ConversionRate })
	if len(channels) > topChannels {
		channels = channels[:topChannels]
	}
	out.TopPerformingChannels = channels
	out.Recommendation = recommendCampaigns(out.AverageConversionRate, threshold)
	return out
}

func recommendCampaigns(avgRate, threshold float64) string {
	if avgRate > threshold {
		return RecommendScale
	}
	return RecommendOptimize
}

// SummarizeExperiments aggregates an experiment batch.
func SummarizeExperiments(recs []models.ExperimentRecord) models.ExperimentInsights {
	out := models.ExperimentInsights{TotalExperiments: len(recs)}
	var upliftSum float64
	wins := 0
	for _, r := range recs {
		if r.StatisticalSignificance {
			out.SignificantCount++
		}
		upliftSum += r.UpliftRelative
		if strings.Contains(r.WinningVariant, "B") || strings.Contains(r.WinningVariant, "Variant") {
			wins++
		}
	}
	if len(recs) > 0 {
		out.AverageUplift = round2(upliftSum / float64(len(recs)))
		out.WinRate = round3(float64(wins) / float64(len(recs)))
	}
	if float64(out.SignificantCount) > float64(len(recs))/2 {
		out.Recommendation = RecommendExperimentsHealthy
	} else {
		out.Recommendation = RecommendExperimentsWeak
	}
	return out
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func round2(f float64) float64 { return roundN(f, 100) }
func round3(f float64) float64 { return roundN(f, 1000) }

// los valores de entrada pueden ser negativos (uplift), redondeo simétrico
func roundN(f, p float64) float64 {
	r := math.Round(f*p) / p
	if math.IsInf(r, 0) {
		return f
	}
	return r
}
