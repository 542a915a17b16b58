package request

// AnalyzeDirectionRequest carries a chart screenshot for bias analysis.
// Image may be a data URL or bare base64.
type AnalyzeDirectionRequest struct {
	Image      string `json:"image"`
	MIMEType   string `json:"mimeType"`
	Instrument string `json:"instrument"`
	Date       string `json:"date"`
}

// UpdateOutcomeRequest sets whether a bias call played out.
type UpdateOutcomeRequest struct {
	Outcome string `json:"outcome"`
}
