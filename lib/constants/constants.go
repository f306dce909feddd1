package constants

const (
	// FieldKeyword defines a logging field to store the name of the running keyword
	FieldKeyword = "keyword"

	// FieldLocator defines a logging field to store the element locator of a keyword
	FieldLocator = "locator"

	// FieldBrowser defines a logging field to store the browser name
	FieldBrowser = "browser"

	// FieldTest defines a logging field to store the name of the running test
	FieldTest = "test"

	// FieldSession defines a logging field to store the reporting session identifier
	FieldSession = "session"
)

const (
	// AlertAccept accepts the alert
	AlertAccept = "ACCEPT"
	// AlertDismiss dismisses the alert
	AlertDismiss = "DISMISS"
	// AlertLeave leaves the alert open
	AlertLeave = "LEAVE"
)

const (
	// WindowMain selects the main window
	WindowMain = "MAIN"
	// WindowNew selects the most recently opened window
	WindowNew = "NEW"
	// WindowCurrent selects the current window
	WindowCurrent = "CURRENT"
	// BrowserCurrent selects the current browser
	BrowserCurrent = "CURRENT"
)

const (
	// LogLevelTrace is the default log level used to dump the page source on failed checks
	LogLevelTrace = "TRACE"
	// LogLevelInfo is the default level of log_source
	LogLevelInfo = "INFO"
	// LogLevelNone disables logging of the page source
	LogLevelNone = "NONE"
)

const (
	// EnvDevToken names the environment variable holding the development token
	EnvDevToken = "TP_DEV_TOKEN"
	// EnvAgentURL names the environment variable holding the agent address
	EnvAgentURL = "TP_AGENT_URL"
	// EnvLibVersion names the environment variable holding the library version
	EnvLibVersion = "TP_ROBOT_LIB_VERSION"
)
