package view

import "github.com/Zachkp/folio/internal/contact"

// uiCopy is the fixed interface text referenced by templates through the
// "copy" func.
var uiCopy = map[string]string{
	"loading":     "Loading...",
	"empty":       "No data available.",
	"noDetails":   "No details available.",
	"themeDark":   "Switch to light mode",
	"themeLight":  "Switch to dark mode",
	"send":        "Send Message",
	"sending":     contact.MsgSending,
	"contactHead": "Get in touch",
	"resume":      "Resume",
	"project":     "View Project",
	"source":      "Source Code",
	"credential":  "View Credential",
	"company":     "Company Site",
}

// Copy returns the interface text for key, or key itself when unknown.
func Copy(key string) string {
	if s, ok := uiCopy[key]; ok {
		return s
	}
	return key
}
