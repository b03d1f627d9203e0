package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	iris "github.com/iris-hq/iris-golang"
)

// callArgs splits CLI arguments into positionals and key=value fields.
type callArgs struct {
	positional []string
	fields     map[string]string
}

func parseCallArgs(args []string) callArgs {
	parsed := callArgs{fields: map[string]string{}}
	for _, arg := range args {
		if idx := strings.Index(arg, "="); idx > 0 {
			parsed.fields[arg[:idx]] = arg[idx+1:]
			continue
		}
		parsed.positional = append(parsed.positional, arg)
	}
	return parsed
}

func (a callArgs) str(i int) (string, error) {
	if i >= len(a.positional) {
		return "", fmt.Errorf("missing argument %d", i+1)
	}
	return a.positional[i], nil
}

func (a callArgs) id(i int) (int64, error) {
	s, err := a.str(i)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("argument %d must be a numeric id: %w", i+1, err)
	}
	return id, nil
}

// intField parses an optional numeric key=value field. Absent fields
// are zero; malformed ones are errors, never silently zero.
func (a callArgs) intField(name string) (int, error) {
	v, ok := a.fields[name]
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric: %w", name, err)
	}
	return n, nil
}

func (a callArgs) pageArgs() (page, perPage int, err error) {
	if page, err = a.intField("page"); err != nil {
		return 0, 0, err
	}
	if perPage, err = a.intField("per_page"); err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

// fieldMap converts key=value pairs into a JSON-ready map, decoding
// values that parse as JSON (numbers, booleans, objects, arrays) and
// keeping the rest as strings.
func (a callArgs) fieldMap() map[string]any {
	out := map[string]any{}
	for k, v := range a.fields {
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			out[k] = decoded
			continue
		}
		out[k] = v
	}
	return out
}

// handler executes one resource.method call against the SDK.
type handler func(ctx context.Context, client *iris.Client, args callArgs) (any, error)

// registry is the explicit resource.method dispatch table. No
// reflection: every callable is listed here.
var registry = map[string]handler{
	"leads.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		params := &iris.ListLeadsParams{Status: a.fields["status"], Search: a.fields["search"]}
		var err error
		if params.Page, err = a.intField("page"); err != nil {
			return nil, err
		}
		if params.PerPage, err = a.intField("per_page"); err != nil {
			return nil, err
		}
		return c.Leads.ListWithContext(ctx, params)
	},
	"leads.get": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.id(0)
		if err != nil {
			return nil, err
		}
		return c.Leads.RetrieveWithContext(ctx, id)
	},
	"leads.create": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Leads.CreateWithContext(ctx, iris.Lead{
			Name:    a.fields["name"],
			Email:   a.fields["email"],
			Company: a.fields["company"],
			Title:   a.fields["title"],
			Status:  a.fields["status"],
		})
	},
	"leads.update": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.id(0)
		if err != nil {
			return nil, err
		}
		return c.Leads.UpdateWithContext(ctx, id, a.fieldMap())
	},
	"leads.delete": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.id(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Leads.DeleteWithContext(ctx, id)
	},
	"leads.send-email": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.id(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Leads.SendEmailWithContext(ctx, id, iris.SendEmailParams{
			Subject: a.fields["subject"],
			Body:    a.fields["body"],
			AgentID: a.fields["agent_id"],
		})
	},
	"agents.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		page, perPage, err := a.pageArgs()
		if err != nil {
			return nil, err
		}
		return c.Agents.ListWithContext(ctx, page, perPage)
	},
	"agents.get": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Agents.RetrieveWithContext(ctx, id)
	},
	"agents.run": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Agents.RunWithContext(ctx, id, a.fieldMap())
	},
	"agents.delete": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Agents.DeleteWithContext(ctx, id)
	},
	"workflows.execute": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		run, err := c.Workflows.ExecuteWithContext(ctx, id, a.fieldMap())
		if err != nil {
			return nil, err
		}
		return map[string]string{"run_id": run.ID()}, nil
	},
	"workflows.status": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		runID, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Workflows.RunStatusWithContext(ctx, runID)
	},
	"workflows.cancel": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		runID, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Workflows.CancelWithContext(ctx, runID)
	},
	"bloqs.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		page, perPage, err := a.pageArgs()
		if err != nil {
			return nil, err
		}
		return c.Bloqs.ListWithContext(ctx, page, perPage)
	},
	"bloqs.get": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Bloqs.RetrieveWithContext(ctx, id)
	},
	"bloqs.create": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Bloqs.CreateWithContext(ctx, a.fields["name"], a.fields["description"])
	},
	"bloqs.search": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		limit, err := a.intField("limit")
		if err != nil {
			return nil, err
		}
		return c.Bloqs.SearchWithContext(ctx, id, a.fields["query"], limit)
	},
	"bloqs.add-document": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		path, err := a.str(1)
		if err != nil {
			return nil, err
		}
		return c.Bloqs.AddDocumentWithContext(ctx, id, path, a.fieldMap())
	},
	"integrations.providers": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Integrations.ListProvidersWithContext(ctx)
	},
	"integrations.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Integrations.ListWithContext(ctx)
	},
	"integrations.disconnect": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Integrations.DisconnectWithContext(ctx, id)
	},
	"courses.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		page, perPage, err := a.pageArgs()
		if err != nil {
			return nil, err
		}
		return c.Courses.ListWithContext(ctx, page, perPage)
	},
	"courses.get": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Courses.RetrieveWithContext(ctx, id)
	},
	"courses.create": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Courses.CreateWithContext(ctx, a.fields["title"], a.fields["description"])
	},
	"courses.publish": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Courses.PublishWithContext(ctx, id)
	},
	"automations.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Automations.ListWithContext(ctx)
	},
	"automations.enable": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Automations.EnableWithContext(ctx, id)
	},
	"automations.disable": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Automations.DisableWithContext(ctx, id)
	},
	"automations.delete": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return nil, c.Automations.DeleteWithContext(ctx, id)
	},
	"calls.start": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		return c.Calls.StartCallWithContext(ctx, iris.StartCallParams{
			AssistantID: a.fields["assistant_id"],
			PhoneNumber: a.fields["phone_number"],
		})
	},
	"calls.get": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Calls.GetCallWithContext(ctx, id)
	},
	"calls.end": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		return c.Calls.EndCallWithContext(ctx, id)
	},
	"calls.list": func(ctx context.Context, c *iris.Client, a callArgs) (any, error) {
		page, perPage, err := a.pageArgs()
		if err != nil {
			return nil, err
		}
		return c.Calls.ListCallsWithContext(ctx, page, perPage)
	},
}

func registeredMethods() []string {
	methods := make([]string, 0, len(registry))
	for name := range registry {
		methods = append(methods, name)
	}
	sort.Strings(methods)
	return methods
}

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <resource.method> [args…] [key=value…]",
		Short: "Invoke an SDK method by name",
		Long: `Dispatches resource.method strings to SDK calls, e.g.:

  iris call leads.list status=qualified per_page=10
  iris call leads.send-email 123 subject="Hello" body="..."
  iris call workflows.execute wf_9 topic="q3 report"

Run with no arguments to list available methods.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(strings.Join(registeredMethods(), "\n"))
				return nil
			}

			name := args[0]
			fn, ok := registry[name]
			if !ok {
				return fmt.Errorf("unknown method %q (run 'iris call' to list methods)", name)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := fn(cmd.Context(), client, parseCallArgs(args[1:]))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	return cmd
}

func printJSON(v any) error {
	if v == nil {
		fmt.Println(`{"success":true}`)
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
