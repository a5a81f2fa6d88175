package cli

import (
	"strings"
	"testing"

	"github.com/go-barry/vista/core"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
)

func TestOpenCommand_PrintsView(t *testing.T) {
	newStarterProject(t)

	out, err := runCommand(OpenCommand, "/subway/?line=F&zoom=14")
	if err != nil {
		t.Fatalf("open command failed: %v", err)
	}

	var view core.View
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("expected view JSON, got %v:\n%s", err, out)
	}
	if view.Name != "TransitAddView" {
		t.Errorf("unexpected view %q", view.Name)
	}
	if view.Params["line"] != "F" || view.Params["zoom"] != "14" || view.Params["title"] != "Brian Lines" {
		t.Errorf("unexpected params: %+v", view.Params)
	}
}

func TestOpenCommand_UnknownFragment(t *testing.T) {
	newStarterProject(t)

	_, err := runCommand(OpenCommand, "nowhere")

	exitErr, ok := err.(cli.ExitCoder)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected cli.Exit code 1, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}
