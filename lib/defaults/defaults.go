package defaults

import "time"

const (
	// SeleniumTimeout is the default timeout of wait keywords
	SeleniumTimeout = 5 * time.Second

	// ImplicitWait is the default implicit wait of a freshly registered browser
	ImplicitWait = 0 * time.Second

	// PollInterval defines the frequency of polling attempts of wait keywords
	PollInterval = 200 * time.Millisecond

	// ScriptTimeout is the default asynchronous script timeout applied on driver init
	ScriptTimeout = 5000 * time.Millisecond

	// RetryDelay defines the initial interval between retry attempts
	RetryDelay = 500 * time.Millisecond
	// RetryMaxDelay limits the interval between retry attempts
	RetryMaxDelay = 10 * time.Second
	// RetryAttempts defines the maximum number of retry attempts
	RetryAttempts = 5

	// ReportTimeout limits a single call to the reporting agent
	ReportTimeout = 30 * time.Second

	// AgentURL is the address of a locally running reporting agent
	AgentURL = "http://localhost:8585"

	// ProjectName is the project name reported when none is configured
	ProjectName = "TestProject Robot"
	// JobName is the job name reported when none is configured
	JobName = "Robot Job"

	// Browser is the browser started when none is configured
	Browser = "firefox"

	// DriverAlias is the alias the session created on init is registered with
	DriverAlias = "testproject_driver"

	// ScreenshotName is the default name template for page screenshots
	ScreenshotName = "selenium-screenshot-{index}.png"
	// ElementScreenshotName is the default name template for element screenshots
	ElementScreenshotName = "selenium-element-screenshot-{index}.png"

	// RunOnFailure is the keyword executed when a keyword fails
	RunOnFailure = "capture_page_screenshot"
)

// ExcludedTestNames lists the test names that are never reported as tests
var ExcludedTestNames = []string{"run_cli", "main"}
