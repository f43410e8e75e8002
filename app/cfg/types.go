package cfg

type Cfg struct {
	// Canvas LMS configuration
	CanvasURL    string
	CanvasToken  string
	LookbackDays int
	PerCourse    int

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string
	Temperature  float64
	MaxTokens    int64

	// Application configuration
	DataDir         string
	ResultsDir      string
	CoursesFile     string
	Port            string
	RefreshInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
