package iris

import "strings"

// Keyword tables for backend host routing. Order matters: every
// primary-data keyword is checked before any workflow keyword, so a
// path like /api/v1/bloqs/agents/55/workflows/execute resolves to the
// primary host via "/bloqs" rather than the workflow host via
// "/workflows/".
var primaryDataKeywords = []string{
	"/users",
	"/leads",
	"/deliverables",
	"/profile",
	"/services",
	"/integrations",
	"/cloud-files",
	"/articles",
	"/bloqs",
	"/programs",
	"/courses",
	"/pages",
	"/videos",
	"/collections",
	"/a2a-payments",
	"/automations",
	"/vapi",
}

var workflowKeywords = []string{
	"/iris/",
	"/chat/",
	"/workflows/",
}

// routeBaseURL maps an endpoint path to one of the three configured
// hosts. The mapping is deterministic and total: every path resolves to
// exactly one host. Pure function, no I/O.
func routeBaseURL(cfg Config, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for _, kw := range primaryDataKeywords {
		if strings.Contains(path, kw) {
			return cfg.APIBaseURL
		}
	}
	for _, kw := range workflowKeywords {
		if strings.Contains(path, kw) {
			return cfg.WorkflowBaseURL
		}
	}
	return cfg.DefaultBaseURL
}
