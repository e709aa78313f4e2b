package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"tdtask/internal/commands"
	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/exitcode"
	"tdtask/internal/tasks"
	"tdtask/internal/testutil"
)

// runAdd parses args with a fresh flag set and runs the add command against tr.
func runAdd(t *testing.T, cfg *config.Config, tr *testutil.FakeTransport, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	cmd := &commands.AddCmd{}
	fs := newFlagSet(cmd)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, tr, credential.New("test-token"), fs.Args(), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Dir: t.TempDir()}
}

func TestVersionCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := (&commands.VersionCmd{}).Run(context.Background(), newConfig(t), nil, nil, nil, &out, &errOut)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if out.String() != "tdtask 0.1.0\n" {
		t.Errorf("expected version output, got %q", out.String())
	}
}

func TestHelpCommand_FlagsText(t *testing.T) {
	var out, errOut bytes.Buffer
	code := (&commands.HelpCmd{}).Run(context.Background(), newConfig(t), nil, nil, nil, &out, &errOut)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	want := "Language of --due (default " + tasks.DefaultDueLang + ")"
	if !strings.Contains(out.String(), want) {
		t.Errorf("help output missing %q", want)
	}
	if !strings.Contains(out.String(), "Flags go before the arguments") {
		t.Error("help output missing flag placement note")
	}
	if strings.Contains(out.String(), "%!") {
		t.Errorf("help output has a bad format verb:\n%s", out.String())
	}
}

func TestAddCommand_ContentOnly(t *testing.T) {
	tr := testutil.NewFakeTransport()

	stdout, stderr, code := runAdd(t, newConfig(t), tr, "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got %q / %q", stdout, stderr)
	}
	reqs := tr.Requests()
	if len(reqs) != 1 || reqs[0].Body != `{"content":"Buy milk"}` {
		t.Errorf("unexpected requests %+v", reqs)
	}
	if reqs[0].Token != "test-token" {
		t.Errorf("expected test-token, got %q", reqs[0].Token)
	}
}

func TestAddCommand_AllFlags(t *testing.T) {
	tr := testutil.NewFakeTransport()

	_, stderr, code := runAdd(t, newConfig(t), tr,
		"--description", "Semi-skimmed",
		"--project", "2203306141",
		"--section", "7025",
		"--parent", "2995104339",
		"--order", "2",
		"-l", "Food", "--label", "Shopping",
		"--priority", "4",
		"--due", "tomorrow at 12", "--due-lang", "EN",
		"--assignee", "2671362",
		"--duration", "30", "--duration-unit", "minute",
		"Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	want := `{"content":"Buy milk","description":"Semi-skimmed","project_id":"2203306141",` +
		`"section_id":"7025","parent_id":"2995104339","order":2,"labels":["Food","Shopping"],` +
		`"priority":4,"due_string":"tomorrow at 12","due_lang":"en","assignee_id":"2671362",` +
		`"duration":30,"duration_unit":"minute"}`
	if got := tr.Requests()[0].Body; got != want {
		t.Errorf("body mismatch\nwant %s\ngot  %s", want, got)
	}
}

func TestAddCommand_UserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no content", nil, "error: content required\n"},
		{"blank content", []string{"  "}, "error: content required\n"},
		{"two due forms", []string{"--due", "today", "--due-date", "2024-01-01", "x"}, "error: only one of --due, --due-date, --due-datetime may be given\n"},
		{"lang without due", []string{"--due-lang", "en", "--due-date", "2024-01-01", "x"}, "error: --due-lang requires --due\n"},
		{"bad lang", []string{"--due", "today", "--due-lang", "not a tag", "x"}, "error: invalid due language: not a tag\n"},
		{"bad date", []string{"--due-date", "01/02/2024", "x"}, "error: invalid due date: 01/02/2024 (want YYYY-MM-DD)\n"},
		{"bad datetime", []string{"--due-datetime", "2024-01-01 10:00", "x"}, "error: invalid due datetime: 2024-01-01 10:00 (want RFC3339)\n"},
		{"labels conflict", []string{"--label", "a", "--no-labels", "x"}, "error: cannot use both --label and --no-labels\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewFakeTransport()
			_, stderr, code := runAdd(t, newConfig(t), tr, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
			if len(tr.Requests()) != 0 {
				t.Error("expected no request")
			}
		})
	}
}

func TestAddCommand_TransportError(t *testing.T) {
	tr := testutil.NewFakeTransport()
	tr.CreateTaskErr = errors.New("connection refused")

	_, stderr, code := runAdd(t, newConfig(t), tr, "x")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_NoCredential(t *testing.T) {
	cmd := &commands.AddCmd{}
	fs := newFlagSet(cmd)
	_ = fs.Parse(nil)

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), newConfig(t), testutil.NewFakeTransport(), nil, []string{"x"}, &out, &errOut)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

func TestAddCommand_Defaults(t *testing.T) {
	cfg := newConfig(t)
	toml := `
[defaults]
project_id = "inbox-project"
labels = ["cli"]
priority = 2
due_lang = "de"
duration_unit = "day"
`
	if err := os.WriteFile(cfg.DefaultsPath(), []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	tr := testutil.NewFakeTransport()
	_, stderr, code := runAdd(t, cfg, tr, "--due", "morgen", "Einkaufen")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	want := `{"content":"Einkaufen","project_id":"inbox-project","labels":["cli"],"priority":2,` +
		`"due_string":"morgen","due_lang":"de","duration_unit":"day"}`
	if got := tr.Requests()[0].Body; got != want {
		t.Errorf("body mismatch\nwant %s\ngot  %s", want, got)
	}

	// Flags override defaults; --no-labels sends an empty list
	tr = testutil.NewFakeTransport()
	_, _, code = runAdd(t, cfg, tr, "--project", "p2", "--priority", "1", "--no-labels", "--due-date", "2024-01-01", "x")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	want = `{"content":"x","project_id":"p2","labels":[],"priority":1,"due_date":"2024-01-01","duration_unit":"day"}`
	if got := tr.Requests()[0].Body; got != want {
		t.Errorf("body mismatch\nwant %s\ngot  %s", want, got)
	}
}

func TestAddCommand_MalformedDefaults(t *testing.T) {
	cfg := newConfig(t)
	if err := os.WriteFile(cfg.DefaultsPath(), []byte("[defaults"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runAdd(t, cfg, testutil.NewFakeTransport(), "x")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error: invalid config.toml") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_DatetimeNormalizedToUTC(t *testing.T) {
	tr := testutil.NewFakeTransport()

	_, _, code := runAdd(t, newConfig(t), tr, "--due-datetime", "2024-01-01T10:00:00+02:00", "x")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := tr.Requests()[0].Body; got != `{"content":"x","due_datetime":"2024-01-01T08:00:00Z"}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestRegistry_AliasAndDuplicates(t *testing.T) {
	cmd, ok := commands.DefaultRegistry.Find("create")
	if !ok || cmd.Name() != "add" {
		t.Fatalf("expected create to resolve to add, got %v", cmd)
	}

	r := commands.NewRegistry()
	if err := r.Register(&commands.AddCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if n := len(r.All()); n != 1 {
		t.Errorf("expected 1 unique command, got %d", n)
	}
}
