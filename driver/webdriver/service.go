package webdriver

import (
	"github.com/gravitational/trace"
	"github.com/sclevine/agouti"
)

// startService launches a local WebDriver service for browser.
// Browsers without a dedicated driver are served by a local selenium server.
func startService(browser Browser, driverPath string) (*agouti.WebDriver, error) {
	service := newService(browser, driverPath)
	if err := service.Start(); err != nil {
		return nil, trace.Wrap(err, "failed to start local driver for %v", browser)
	}
	return service, nil
}

func newService(browser Browser, driverPath string) *agouti.WebDriver {
	switch browser {
	case Chrome:
		if driverPath == "" {
			return agouti.ChromeDriver()
		}
		return agouti.NewWebDriver("http://{{.Address}}", []string{driverPath, "--port={{.Port}}"})
	case Firefox:
		return agouti.NewWebDriver("http://{{.Address}}", []string{binary(driverPath, "geckodriver"), "--port={{.Port}}"})
	case Edge:
		return agouti.NewWebDriver("http://{{.Address}}", []string{binary(driverPath, "msedgedriver"), "--port={{.Port}}"})
	case InternetExplorer:
		return agouti.NewWebDriver("http://{{.Address}}", []string{binary(driverPath, "IEDriverServer"), "/port={{.Port}}"})
	case Safari:
		return agouti.NewWebDriver("http://{{.Address}}", []string{binary(driverPath, "safaridriver"), "--port", "{{.Port}}"})
	}
	if driverPath == "" {
		return agouti.Selenium()
	}
	return agouti.NewWebDriver("http://{{.Address}}/wd/hub", []string{driverPath, "-port", "{{.Port}}"})
}

func binary(path, fallback string) string {
	if path != "" {
		return path
	}
	return fallback
}
