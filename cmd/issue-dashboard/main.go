// Issue Dashboard: admin view over the civic issue backend.
//
// Usage:
//
//	issue-dashboard serve                    Start the web dashboard
//	issue-dashboard summary --json           Print counters and charts once
//	issue-dashboard watch                    Interactive terminal dashboard
//	issue-dashboard mock-api                 Run the in-memory development backend
//	issue-dashboard token --subject alice    Mint a bearer token for mock-api
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
