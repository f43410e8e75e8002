package analyzer

// Classification is the structured verdict for a single announcement.
// Course, Date and Period stay empty when the model could not extract them.
type Classification struct {
	Course   string `json:"course"`
	Date     string `json:"date"`
	Period   string `json:"period"`
	Canceled bool   `json:"canceled"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

// AnalysisError reports a failed classification together with the raw model
// output that could not be parsed. The orchestrator logs it and skips the
// announcement instead of aborting the run.
type AnalysisError struct {
	Err         error
	RawResponse string
}

func (e *AnalysisError) Error() string {
	return "analysis failed: " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
