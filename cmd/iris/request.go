package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	iris "github.com/iris-hq/iris-golang"
)

func newRequestCmd() *cobra.Command {
	var (
		data    string
		queries []string
	)

	cmd := &cobra.Command{
		Use:   "request <METHOD> <path>",
		Short: "Send a raw request through the gateway",
		Long: `Performs an arbitrary HTTP request with the client's auth, routing
and retry behavior, e.g.:

  iris request GET /api/v1/leads --query status=qualified
  iris request POST /api/v1/agents --data '{"name":"researcher"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			path := args[1]

			opts := &iris.RequestOptions{}
			if data != "" {
				var body any
				if err := json.Unmarshal([]byte(data), &body); err != nil {
					return fmt.Errorf("--data is not valid JSON: %w", err)
				}
				opts.Body = body
			}
			if len(queries) > 0 {
				opts.Query = map[string]string{}
				for _, q := range queries {
					idx := strings.Index(q, "=")
					if idx <= 0 {
						return fmt.Errorf("--query %q must be key=value", q)
					}
					opts.Query[q[:idx]] = q[idx+1:]
				}
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Request(cmd.Context(), method, path, opts)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "query parameter (key=value, repeatable)")
	return cmd
}
