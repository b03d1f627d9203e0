// Package iris is the Go SDK for the IRIS platform API.
//
// # Installation
//
//	go get github.com/iris-hq/iris-golang@v0.1.0
//
// # Quick Start
//
// Create a client and list leads:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//		"os"
//
//		iris "github.com/iris-hq/iris-golang"
//	)
//
//	func main() {
//		client, err := iris.NewClient(
//			os.Getenv("IRIS_API_KEY"),
//			0,  // userID (0 = from environment)
//			"", // baseURL (optional)
//			0,  // timeout (0 = default 30s)
//			0,  // retries (0 = default 3)
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Close()
//
//		leads, err := client.Leads.List(nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		for _, lead := range leads.Results {
//			fmt.Printf("%d: %s <%s>\n", lead.ID, lead.Name, lead.Email)
//		}
//	}
//
// # Core Features
//
//   - Resource wrappers for leads, agents, workflows, bloqs,
//     integrations, courses, automations, and voice calls
//   - Generic gateway surface (Request/Get/Post/Put/Patch/Delete/Upload)
//     for endpoints without a typed wrapper
//   - Automatic backend host routing (data API vs workflow API)
//   - Automatic retry with exponential backoff and Retry-After support
//   - Multipart file uploads
//   - Context-aware operations for cancellation support
//   - Request/response hooks for monitoring
//
// # Environment Variables
//
//   - IRIS_API_KEY: Your IRIS API key
//   - IRIS_USER_ID: Optional numeric user id, sent as the X-User-ID header
//   - IRIS_API_BASE_URL: Primary data API host (defaults to https://api.useiris.com)
//   - IRIS_WORKFLOW_BASE_URL: Workflow API host (defaults to https://iris.useiris.com)
//   - IRIS_CLIENT_ID / IRIS_CLIENT_SECRET: Optional OAuth2 client credentials
//   - IRIS_TIMEOUT: Optional request timeout (defaults to 30s)
//   - IRIS_MAX_RETRIES: Optional max attempts per request (defaults to 3)
//   - IRIS_DEBUG: Log requests and responses
package iris
