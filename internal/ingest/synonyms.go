package ingest

import "github.com/AngelCh415/landing-insights/internal/models"

// FieldSpec maps one canonical field to its accepted source headers.
// Synonyms are normalized header keys tried in order; the first non-empty
// match wins. When nothing matches, Default is used (Today substitutes the
// current date instead).
type FieldSpec[T any] struct {
	Field    string
	Synonyms []string
	Default  string
	Today    bool
	set      func(*T, string)
}

// CampaignSynonyms is the precedence table for the campaign schema.
var CampaignSynonyms = []FieldSpec[models.CampaignRecord]{
	{Field: "campaign_name", Default: "Untitled Campaign",
		Synonyms: []string{"campaign_name", "campaign", "name", "campaign_title", "utm_campaign"},
		set:      func(r *models.CampaignRecord, v string) { r.CampaignName = v }},
	{Field: "campaign_date", Today: true,
		Synonyms: []string{"campaign_date", "date", "day", "report_date", "start_date"},
		set:      func(r *models.CampaignRecord, v string) { r.CampaignDate = v }},
	{Field: "traffic_source",
		Synonyms: []string{"traffic_source", "source", "channel", "traffic_channel", "utm_source"},
		set:      func(r *models.CampaignRecord, v string) { r.TrafficSource = v }},
	{Field: "utm_source",
		Synonyms: []string{"utm_source", "source"},
		set:      func(r *models.CampaignRecord, v string) { r.UTMSource = v }},
	{Field: "utm_medium",
		Synonyms: []string{"utm_medium", "medium"},
		set:      func(r *models.CampaignRecord, v string) { r.UTMMedium = v }},
	{Field: "device_type",
		Synonyms: []string{"device_type", "device", "device_category"},
		set:      func(r *models.CampaignRecord, v string) { r.DeviceType = v }},
	{Field: "sessions",
		Synonyms: []string{"sessions", "session", "visits", "page_views", "pageviews"},
		set:      func(r *models.CampaignRecord, v string) { r.Sessions = ParseCount(v) }},
	{Field: "users",
		Synonyms: []string{"users", "total_users", "unique_visitors", "visitors"},
		set:      func(r *models.CampaignRecord, v string) { r.Users = ParseCount(v) }},
	{Field: "new_users",
		Synonyms: []string{"new_users", "new_visitors"},
		set:      func(r *models.CampaignRecord, v string) { r.NewUsers = ParseCount(v) }},
	{Field: "bounce_rate",
		Synonyms: []string{"bounce_rate", "bounce_rate_pct", "bounce_rate_percent", "bounce"},
		set:      func(r *models.CampaignRecord, v string) { r.BounceRate = maxf(ParseNumber(v)) }},
	{Field: "engagement_rate",
		Synonyms: []string{"engagement_rate", "engagement_rate_pct", "engagement"},
		set:      func(r *models.CampaignRecord, v string) { r.EngagementRate = maxf(ParseNumber(v)) }},
	{Field: "scroll_depth",
		Synonyms: []string{"scroll_depth", "scroll_depth_pct", "avg_scroll_depth", "scroll"},
		set:      func(r *models.CampaignRecord, v string) { r.ScrollDepth = maxf(ParseNumber(v)) }},
	{Field: "avg_time_on_page",
		Synonyms: []string{"avg_time_on_page", "avg_time_on_page_seconds", "avg_time_on_page_sec", "avg_time_on_page_s", "average_time_on_page", "time_on_page", "avg_session_duration"},
		set:      func(r *models.CampaignRecord, v string) { r.AvgTimeOnPage = ParseSeconds(v) }},
	{Field: "primary_conversions",
		Synonyms: []string{"primary_conversions", "conversions", "conversion", "leads", "signups"},
		set:      func(r *models.CampaignRecord, v string) { r.PrimaryConversions = ParseCount(v) }},
	{Field: "primary_conversion_rate",
		Synonyms: []string{"primary_conversion_rate", "conversion_rate", "conversion_rate_pct", "conv_rate", "cvr", "cr"},
		set:      func(r *models.CampaignRecord, v string) { r.PrimaryConversionRate = maxf(ParseNumber(v)) }},
	{Field: "secondary_conversions",
		Synonyms: []string{"secondary_conversions", "micro_conversions"},
		set:      func(r *models.CampaignRecord, v string) { r.SecondaryConversions = ParseCount(v) }},
	{Field: "primary_cta_clicks",
		Synonyms: []string{"primary_cta_clicks", "cta_clicks", "clicks"},
		set:      func(r *models.CampaignRecord, v string) { r.PrimaryCTAClicks = ParseCount(v) }},
	{Field: "form_views",
		Synonyms: []string{"form_views", "form_impressions"},
		set:      func(r *models.CampaignRecord, v string) { r.FormViews = ParseCount(v) }},
	{Field: "form_starters",
		Synonyms: []string{"form_starters", "form_starts", "form_started"},
		set:      func(r *models.CampaignRecord, v string) { r.FormStarters = ParseCount(v) }},
	{Field: "form_completions",
		Synonyms: []string{"form_completions", "form_submissions", "form_completed", "submissions"},
		set:      func(r *models.CampaignRecord, v string) { r.FormCompletions = ParseCount(v) }},
	{Field: "form_abandonment_rate",
		Synonyms: []string{"form_abandonment_rate", "form_abandonment_rate_pct", "abandonment_rate", "form_abandonment"},
		set:      func(r *models.CampaignRecord, v string) { r.FormAbandonmentRate = maxf(ParseNumber(v)) }},
	{Field: "total_spend",
		Synonyms: []string{"total_spend", "spend", "cost", "ad_spend", "total_cost", "budget_spent"},
		set:      func(r *models.CampaignRecord, v string) { r.TotalSpend = maxf(ParseNumber(v)) }},
	{Field: "cost_per_session",
		Synonyms: []string{"cost_per_session", "cps", "cost_per_visit"},
		set:      func(r *models.CampaignRecord, v string) { r.CostPerSession = maxf(ParseNumber(v)) }},
	{Field: "cost_per_conversion",
		Synonyms: []string{"cost_per_conversion", "cpa", "cost_per_acquisition", "cost_per_lead", "cpl"},
		set:      func(r *models.CampaignRecord, v string) { r.CostPerConversion = maxf(ParseNumber(v)) }},
	{Field: "customer_acquisition_cost",
		Synonyms: []string{"customer_acquisition_cost", "cac"},
		set:      func(r *models.CampaignRecord, v string) { r.CustomerAcquisitionCost = maxf(ParseNumber(v)) }},
}

// ExperimentSynonyms is the precedence table for the experiment schema.
var ExperimentSynonyms = []FieldSpec[models.ExperimentRecord]{
	{Field: "experiment_name", Default: "Untitled Experiment",
		Synonyms: []string{"experiment_name", "experiment", "test_name", "test", "name"},
		set:      func(r *models.ExperimentRecord, v string) { r.ExperimentName = v }},
	{Field: "hypothesis",
		Synonyms: []string{"hypothesis"},
		set:      func(r *models.ExperimentRecord, v string) { r.Hypothesis = v }},
	{Field: "owner",
		Synonyms: []string{"owner", "experiment_owner", "test_owner"},
		set:      func(r *models.ExperimentRecord, v string) { r.Owner = v }},
	{Field: "start_date", Today: true,
		Synonyms: []string{"start_date", "start", "started", "date"},
		set:      func(r *models.ExperimentRecord, v string) { r.StartDate = v }},
	{Field: "end_date",
		Synonyms: []string{"end_date", "end", "ended"},
		set:      func(r *models.ExperimentRecord, v string) { r.EndDate = v }},
	{Field: "audience_targeted",
		Synonyms: []string{"audience_targeted", "audience", "target_audience", "segment"},
		set:      func(r *models.ExperimentRecord, v string) { r.AudienceTargeted = v }},
	{Field: "traffic_allocation",
		Synonyms: []string{"traffic_allocation", "allocation", "traffic_split", "split"},
		set:      func(r *models.ExperimentRecord, v string) { r.TrafficAllocation = v }},
	{Field: "sample_size_control",
		Synonyms: []string{"sample_size_control", "control_sample_size", "control_sample", "control_visitors", "control_n"},
		set:      func(r *models.ExperimentRecord, v string) { r.SampleSizeControl = ParseCount(v) }},
	{Field: "sample_size_variant",
		Synonyms: []string{"sample_size_variant", "variant_sample_size", "variant_sample", "variant_visitors", "variant_n"},
		set:      func(r *models.ExperimentRecord, v string) { r.SampleSizeVariant = ParseCount(v) }},
	{Field: "control_result_primary",
		Synonyms: []string{"control_result_primary", "control_result", "control_conversion_rate", "control_rate", "control_cr"},
		set:      func(r *models.ExperimentRecord, v string) { r.ControlResultPrimary = ParseNumber(v) }},
	{Field: "variant_result_primary",
		Synonyms: []string{"variant_result_primary", "variant_result", "variant_conversion_rate", "variant_rate", "variant_cr"},
		set:      func(r *models.ExperimentRecord, v string) { r.VariantResultPrimary = ParseNumber(v) }},
	{Field: "delta_absolute",
		Synonyms: []string{"delta_absolute", "delta", "absolute_delta", "difference"},
		set:      func(r *models.ExperimentRecord, v string) { r.DeltaAbsolute = ParseNumber(v) }},
	{Field: "uplift_relative",
		Synonyms: []string{"uplift_relative", "uplift", "relative_uplift", "lift"},
		set:      func(r *models.ExperimentRecord, v string) { r.UpliftRelative = ParseNumber(v) }},
	{Field: "statistical_significance",
		Synonyms: []string{"statistical_significance", "significance", "significant", "is_significant", "stat_sig"},
		set:      func(r *models.ExperimentRecord, v string) { r.StatisticalSignificance = ParseBool(v) }},
	{Field: "p_value",
		Synonyms: []string{"p_value", "pvalue", "p"},
		set:      func(r *models.ExperimentRecord, v string) { r.PValue = maxf(ParseNumber(v)) }},
	{Field: "winning_variant",
		Synonyms: []string{"winning_variant", "winner", "winning_version"},
		set:      func(r *models.ExperimentRecord, v string) { r.WinningVariant = v }},
	{Field: "decision_taken",
		Synonyms: []string{"decision_taken", "decision"},
		set:      func(r *models.ExperimentRecord, v string) { r.DecisionTaken = v }},
	{Field: "key_insights",
		Synonyms: []string{"key_insights", "insights", "learnings"},
		set:      func(r *models.ExperimentRecord, v string) { r.KeyInsights = v }},
	{Field: "projected_business_impact",
		Synonyms: []string{"projected_business_impact", "business_impact", "impact"},
		set:      func(r *models.ExperimentRecord, v string) { r.ProjectedBusinessImpact = v }},
	{Field: "limitations_notes",
		Synonyms: []string{"limitations_notes", "limitations", "notes"},
		set:      func(r *models.ExperimentRecord, v string) { r.LimitationsNotes = v }},
	{Field: "future_recommendations",
		Synonyms: []string{"future_recommendations", "recommendations", "next_steps"},
		set:      func(r *models.ExperimentRecord, v string) { r.FutureRecommendations = v }},
}
