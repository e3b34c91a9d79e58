package models

import "strings"

type FileType string

const (
	FileCSV   FileType = "csv"
	FileTSV   FileType = "tsv"
	FileExcel FileType = "excel"
	FileCSS   FileType = "css"
	FileImage FileType = "image"
)

// ParseFileType acepta también las extensiones comunes (xlsx, xls, txt).
func ParseFileType(s string) (FileType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "txt", "text/csv":
		return FileCSV, true
	case "tsv", "tab":
		return FileTSV, true
	case "excel", "xlsx", "xls":
		return FileExcel, true
	case "css":
		return FileCSS, true
	case "image", "png", "jpg", "jpeg", "gif", "webp":
		return FileImage, true
	}
	return "", false
}

type DataType string

const (
	DataCampaigns   DataType = "campaigns"
	DataExperiments DataType = "experiments"
)

func ParseDataType(s string) (DataType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "campaigns", "campaign":
		return DataCampaigns, true
	case "experiments", "experiment":
		return DataExperiments, true
	}
	return "", false
}

// CampaignRecord is one row of campaign performance data. Rates are
// percentage points (0-100); avg_time_on_page is whole seconds.
type CampaignRecord struct {
	CampaignName            string  `json:"campaign_name"`
	CampaignDate            string  `json:"campaign_date"`
	TrafficSource           string  `json:"traffic_source"`
	UTMSource               string  `json:"utm_source"`
	UTMMedium               string  `json:"utm_medium"`
	DeviceType              string  `json:"device_type"`
	Sessions                int     `json:"sessions"`
	Users                   int     `json:"users"`
	NewUsers                int     `json:"new_users"`
	BounceRate              float64 `json:"bounce_rate"`
	EngagementRate          float64 `json:"engagement_rate"`
	ScrollDepth             float64 `json:"scroll_depth"`
	AvgTimeOnPage           int     `json:"avg_time_on_page"`
	PrimaryConversions      int     `json:"primary_conversions"`
	PrimaryConversionRate   float64 `json:"primary_conversion_rate"`
	SecondaryConversions    int     `json:"secondary_conversions"`
	PrimaryCTAClicks        int     `json:"primary_cta_clicks"`
	FormViews               int     `json:"form_views"`
	FormStarters            int     `json:"form_starters"`
	FormCompletions         int     `json:"form_completions"`
	FormAbandonmentRate     float64 `json:"form_abandonment_rate"`
	TotalSpend              float64 `json:"total_spend"`
	CostPerSession          float64 `json:"cost_per_session"`
	CostPerConversion       float64 `json:"cost_per_conversion"`
	CustomerAcquisitionCost float64 `json:"customer_acquisition_cost"`
}

// Source is the attribution key used for grouping: traffic_source, then
// utm_source, then "unknown".
func (c CampaignRecord) Source() string {
	if s := strings.TrimSpace(c.TrafficSource); s != "" {
		return s
	}
	if s := strings.TrimSpace(c.UTMSource); s != "" {
		return s
	}
	return "unknown"
}

// ExperimentRecord summarizes one A/B test.
type ExperimentRecord struct {
	ExperimentName          string  `json:"experiment_name"`
	Hypothesis              string  `json:"hypothesis"`
	Owner                   string  `json:"owner"`
	StartDate               string  `json:"start_date"`
	EndDate                 string  `json:"end_date"`
	AudienceTargeted        string  `json:"audience_targeted"`
	TrafficAllocation       string  `json:"traffic_allocation"`
	SampleSizeControl       int     `json:"sample_size_control"`
	SampleSizeVariant       int     `json:"sample_size_variant"`
	ControlResultPrimary    float64 `json:"control_result_primary"`
	VariantResultPrimary    float64 `json:"variant_result_primary"`
	DeltaAbsolute           float64 `json:"delta_absolute"`
	UpliftRelative          float64 `json:"uplift_relative"`
	StatisticalSignificance bool    `json:"statistical_significance"`
	PValue                  float64 `json:"p_value"`
	WinningVariant          string  `json:"winning_variant"`
	DecisionTaken           string  `json:"decision_taken"`
	KeyInsights             string  `json:"key_insights"`
	ProjectedBusinessImpact string  `json:"projected_business_impact"`
	LimitationsNotes        string  `json:"limitations_notes"`
	FutureRecommendations   string  `json:"future_recommendations"`
}

type ChannelPerformance struct {
	Source         string  `json:"source"`
	Sessions       int     `json:"sessions"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

type CampaignInsights struct {
	TotalRecords             int                  `json:"total_records"`
	TotalSessions            int                  `json:"total_sessions"`
	TotalConversions         int                  `json:"total_conversions"`
	AverageConversionRate    float64              `json:"average_conversion_rate"`
	TotalSpend               float64              `json:"total_spend"`
	AverageCostPerConversion float64              `json:"average_cost_per_conversion"`
	TopSource                string               `json:"top_source"`
	TopPerformingChannels    []ChannelPerformance `json:"top_performing_channels"`
	Recommendation           string               `json:"recommendation"`
}

type ExperimentInsights struct {
	TotalExperiments int     `json:"total_experiments"`
	SignificantCount int     `json:"significant_count"`
	AverageUplift    float64 `json:"average_uplift"`
	WinRate          float64 `json:"win_rate"`
	Recommendation   string  `json:"recommendation"`
}
