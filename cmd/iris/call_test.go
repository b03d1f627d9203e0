package main

import (
	"reflect"
	"testing"
)

func TestParseCallArgs(t *testing.T) {
	args := parseCallArgs([]string{"42", "subject=Hello there", "count=3", "./file.pdf"})
	if !reflect.DeepEqual(args.positional, []string{"42", "./file.pdf"}) {
		t.Errorf("positional = %v", args.positional)
	}
	if args.fields["subject"] != "Hello there" {
		t.Errorf("subject = %q", args.fields["subject"])
	}
	if args.fields["count"] != "3" {
		t.Errorf("count = %q", args.fields["count"])
	}
}

func TestCallArgsID(t *testing.T) {
	args := parseCallArgs([]string{"42"})
	id, err := args.id(0)
	if err != nil || id != 42 {
		t.Fatalf("id = %d, err = %v", id, err)
	}
	if _, err := args.id(1); err == nil {
		t.Errorf("expected error for missing argument")
	}
	if _, err := parseCallArgs([]string{"abc"}).id(0); err == nil {
		t.Errorf("expected error for non-numeric id")
	}
}

func TestCallArgsIntField(t *testing.T) {
	args := parseCallArgs([]string{"page=2", "per_page=abc"})

	page, err := args.intField("page")
	if err != nil || page != 2 {
		t.Fatalf("page = %d, err = %v", page, err)
	}
	if n, err := args.intField("missing"); err != nil || n != 0 {
		t.Errorf("absent field = %d, err = %v, want 0 and nil", n, err)
	}
	if _, err := args.intField("per_page"); err == nil {
		t.Errorf("expected error for non-numeric per_page")
	}
	if _, _, err := args.pageArgs(); err == nil {
		t.Errorf("expected pageArgs to reject non-numeric per_page")
	}
}

func TestCallArgsFieldMap(t *testing.T) {
	args := parseCallArgs([]string{"limit=5", "enabled=true", "name=Ada", `tags=["a","b"]`})
	fields := args.fieldMap()
	if fields["limit"] != float64(5) {
		t.Errorf("limit = %v (%T)", fields["limit"], fields["limit"])
	}
	if fields["enabled"] != true {
		t.Errorf("enabled = %v", fields["enabled"])
	}
	if fields["name"] != "Ada" {
		t.Errorf("name = %v", fields["name"])
	}
	if tags, ok := fields["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %v", fields["tags"])
	}
}

func TestRegistryCoversCoreResources(t *testing.T) {
	for _, name := range []string{
		"leads.list", "leads.get", "leads.create", "leads.update", "leads.delete",
		"agents.run", "workflows.execute", "workflows.status",
		"bloqs.search", "bloqs.add-document",
		"integrations.providers", "courses.publish",
		"automations.enable", "calls.start",
	} {
		if _, ok := registry[name]; !ok {
			t.Errorf("registry missing %q", name)
		}
	}
}
