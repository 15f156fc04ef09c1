package rule

// Identifiers the frontend rules insert and reference.
const (
	TimedOutState  = "timedOut"
	TimedOutSetter = "setTimedOut"
	ErrorState     = "error"
	ErrorSetter    = "setError"
)

// ⚙️ FrontendOptions configures the component pipeline
type FrontendOptions struct {
	ClientImportPath string // Module exporting the call wrapper
	CallWrapper      string // Wrapper replacing fetch
	ErrorHelper      string // Second binding imported with the wrapper
	IconPackage      string
	TimeoutIcon      string
	ErrorIcon        string
	TimeoutMillis    int
	ErrorFallback    string // Message used when the wrapper reports no error text
}

// DefaultFrontendOptions returns the stock component pipeline settings
func DefaultFrontendOptions() FrontendOptions {
	return FrontendOptions{
		ClientImportPath: "@/lib/api-client",
		CallWrapper:      "apiCall",
		ErrorHelper:      "getErrorMessage",
		IconPackage:      "lucide-react",
		TimeoutIcon:      "Clock",
		ErrorIcon:        "AlertCircle",
		TimeoutMillis:    5000,
		ErrorFallback:    "Request failed",
	}
}

func (o FrontendOptions) withDefaults() FrontendOptions {
	d := DefaultFrontendOptions()
	if o.ClientImportPath == "" {
		o.ClientImportPath = d.ClientImportPath
	}
	if o.CallWrapper == "" {
		o.CallWrapper = d.CallWrapper
	}
	if o.ErrorHelper == "" {
		o.ErrorHelper = d.ErrorHelper
	}
	if o.IconPackage == "" {
		o.IconPackage = d.IconPackage
	}
	if o.TimeoutIcon == "" {
		o.TimeoutIcon = d.TimeoutIcon
	}
	if o.ErrorIcon == "" {
		o.ErrorIcon = d.ErrorIcon
	}
	if o.TimeoutMillis <= 0 {
		o.TimeoutMillis = d.TimeoutMillis
	}
	if o.ErrorFallback == "" {
		o.ErrorFallback = d.ErrorFallback
	}
	return o
}

// ⚙️ BackendOptions configures the route handler pipeline
type BackendOptions struct {
	TimeoutImportPath        string
	Wrapper                  string // Function wrapping database calls
	ErrorMapper              string // Maps a timeout error to a response payload
	ErrorType                string
	TimeoutMillis            int
	TransactionTimeoutMillis int
}

// DefaultBackendOptions returns the stock route handler pipeline settings
func DefaultBackendOptions() BackendOptions {
	return BackendOptions{
		TimeoutImportPath:        "@/lib/timeout",
		Wrapper:                  "withPrismaTimeout",
		ErrorMapper:              "handleTimeoutError",
		ErrorType:                "TimeoutError",
		TimeoutMillis:            5000,
		TransactionTimeoutMillis: 8000,
	}
}

func (o BackendOptions) withDefaults() BackendOptions {
	d := DefaultBackendOptions()
	if o.TimeoutImportPath == "" {
		o.TimeoutImportPath = d.TimeoutImportPath
	}
	if o.Wrapper == "" {
		o.Wrapper = d.Wrapper
	}
	if o.ErrorMapper == "" {
		o.ErrorMapper = d.ErrorMapper
	}
	if o.ErrorType == "" {
		o.ErrorType = d.ErrorType
	}
	if o.TimeoutMillis <= 0 {
		o.TimeoutMillis = d.TimeoutMillis
	}
	if o.TransactionTimeoutMillis <= 0 {
		o.TransactionTimeoutMillis = d.TransactionTimeoutMillis
	}
	return o
}
