package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/testutil"
)

// runCommand is a helper to run a command with FakeStore.
func runCommand(t *testing.T, cmd commands.Command, store service.Store, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, store, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func expectCode(t *testing.T, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("expected exit code %d, got %d", want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todoctl 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	for _, cmd := range commands.DefaultRegistry.All() {
		if !strings.Contains(stdout, "todoctl "+cmd.Name()) {
			t.Errorf("help output should mention %q", cmd.Name())
		}
	}
}

// Tests for list command
func TestListCommand_ActiveAndCompleted(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Buy milk", false)
	store.AddTask("t2", "Walk dog", true)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, store, nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "Active (1)\n------------\n   1  Buy milk\n\n" +
		"Completed (1)\n------------\n  c1  Walk dog\n\n" +
		"total 2  active 1  completed 1  progress 50%\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeStore(), nil, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "no tasks yet\n" {
		t.Errorf("expected %q, got %q", "no tasks yet\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeStore(), nil, true)

	expectCode(t, exitcode.Success, code)
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output in quiet mode, got %q / %q", stdout, stderr)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.ListErr = errors.New("connection refused")

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, store, nil, false)

	expectCode(t, exitcode.BackendError, code)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: Failed to load tasks. (connection refused)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand_Long(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Buy milk", false)

	cmd := &commands.ListCmd{}
	cmd.SetLong(true)
	stdout, _, code := runCommand(t, cmd, store, nil, false)

	expectCode(t, exitcode.Success, code)
	if !strings.Contains(stdout, "id: t1  created: 2024-05-01 09:30\n") {
		t.Errorf("expected id and date in long output, got %q", stdout)
	}
}

// Tests for show command
func TestShowCommand(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)

	stdout, stderr, code := runCommand(t, &commands.ShowCmd{}, store, []string{"t1"}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "id:          t1\n" +
		"title:       Read\n" +
		"status:      active\n" +
		"created:     2024-05-01 09:30\n" +
		"updated:     2024-05-01 09:30\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if store.CallCount("Get") != 1 {
		t.Errorf("expected one Get call, got %d", store.CallCount("Get"))
	}
}

func TestShowCommand_FetchError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)
	store.GetErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.ShowCmd{}, store, []string{"1"}, false)

	expectCode(t, exitcode.BackendError, code)
	expected := "error: Failed to fetch task. (boom)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	store := testutil.NewFakeStore()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, []string{"Buy", "milk"}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Completed {
		t.Errorf("unexpected tasks: %#v", tasks)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeStore(), []string{"Buy milk"}, true)

	expectCode(t, exitcode.Success, code)
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_WithDescriptionAndDone(t *testing.T) {
	store := testutil.NewFakeStore()
	cmd := &commands.AddCmd{}
	cmd.SetDescription("  two liters  ")
	cmd.SetDone(true)

	_, stderr, code := runCommand(t, cmd, store, []string{"  Buy milk  "}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || tasks[0].Description != "two liters" || !tasks[0].Completed {
		t.Errorf("unexpected task: %#v", tasks[0])
	}
	if n := store.CallCount("Create"); n != 1 {
		t.Errorf("expected 1 Create, got %d", n)
	}
	if n := store.CallCount("Update"); n != 1 {
		t.Errorf("expected 1 Update to mark the new task done, got %d", n)
	}
}

func TestAddCommand_WithoutDoneSkipsUpdate(t *testing.T) {
	store := testutil.NewFakeStore()

	_, _, code := runCommand(t, &commands.AddCmd{}, store, []string{"Buy milk"}, false)

	expectCode(t, exitcode.Success, code)
	if n := store.CallCount("Update"); n != 0 {
		t.Errorf("expected no Update, got %d", n)
	}
	if tasks := store.Tasks(); len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("unexpected tasks: %#v", tasks)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	store := testutil.NewFakeStore()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, nil, false)

	expectCode(t, exitcode.UserError, code)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: title: Title is required\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if store.CallCount("Create") != 0 {
		t.Error("invalid input must not reach the store")
	}
}

func TestAddCommand_InvalidFields(t *testing.T) {
	store := testutil.NewFakeStore()
	cmd := &commands.AddCmd{}
	cmd.SetDescription(strings.Repeat("x", 501))

	_, stderr, code := runCommand(t, cmd, store, []string{"A"}, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: title: Title must be at least 2 characters\n" +
		"error: description: Description must be at most 500 characters\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if store.CallCount("Create") != 0 {
		t.Error("invalid input must not reach the store")
	}
}

func TestAddCommand_BackendError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.CreateErr = errors.New("boom")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, []string{"Buy milk"}, false)

	expectCode(t, exitcode.BackendError, code)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: Failed to create task. (boom)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

// Tests for edit command
func TestEditCommand_Title(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)
	cmd := &commands.EditCmd{}
	cmd.SetTitle("Read chapter 3")

	stdout, stderr, code := runCommand(t, cmd, store, []string{"1"}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	if got := store.Tasks()[0].Title; got != "Read chapter 3" {
		t.Errorf("expected updated title, got %q", got)
	}
	if store.CallCount("Create") != 0 {
		t.Error("edit must not create")
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)

	_, stderr, code := runCommand(t, &commands.EditCmd{}, store, []string{"1"}, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: nothing to change: use --title or --desc\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestEditCommand_CompletedTask(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", true)
	cmd := &commands.EditCmd{}
	cmd.SetTitle("Read again")

	_, stderr, code := runCommand(t, cmd, store, []string{"c1"}, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: completed tasks cannot be edited: c1\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if store.CallCount("Update") != 0 {
		t.Error("completed task must not be updated")
	}
}

func TestEditCommand_InvalidTitle(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)
	cmd := &commands.EditCmd{}
	cmd.SetTitle(" x ")

	_, stderr, code := runCommand(t, cmd, store, []string{"t1"}, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: title: Title must be at least 2 characters\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if store.CallCount("Update") != 0 {
		t.Error("invalid input must not reach the store")
	}
}

// Tests for done and undo commands
func TestDoneCommand_Success(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)
	store.AddTask("t2", "Write", false)

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"2"}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	tasks := store.Tasks()
	if tasks[0].Completed || !tasks[1].Completed {
		t.Errorf("expected only t2 completed, got %#v", tasks)
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, testutil.NewFakeStore(), nil, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: task reference required\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"3"}, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: task number out of range: 3\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDoneCommand_BackendError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", false)
	store.UpdateErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)

	expectCode(t, exitcode.BackendError, code)
	expected := "error: Failed to change task status. (boom)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestUndoCommand_Success(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("t1", "Read", true)

	_, _, code := runCommand(t, &commands.UndoCmd{}, store, []string{"c1"}, false)

	expectCode(t, exitcode.Success, code)
	if store.Tasks()[0].Completed {
		t.Error("expected task to be active again")
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("abc123", "Read", false)
	store.AddTask("def456", "Write", false)

	stdout, _, code := runCommand(t, &commands.RmCmd{}, store, []string{"abc"}, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "def456" {
		t.Errorf("unexpected tasks: %#v", tasks)
	}
}

func TestRmCommand_UnknownID(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("abc123", "Read", false)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, store, []string{"zzz"}, false)

	expectCode(t, exitcode.UserError, code)
	expected := "error: task not found: zzz\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if store.CallCount("Delete") != 0 {
		t.Error("unresolved ref must not reach the store")
	}
}

func TestRmCommand_BackendError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("abc123", "Read", false)
	store.DeleteErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.RmCmd{}, store, []string{"1"}, false)

	expectCode(t, exitcode.BackendError, code)
	expected := "error: Failed to delete task. (boom)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if len(store.Tasks()) != 1 {
		t.Error("task must survive a failed delete")
	}
}

// Tests for the registry
func TestRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{
		"ls":     "list",
		"create": "add",
		"delete": "rm",
		"reopen": "undo",
		"tui":    "ui",
	} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q: expected %q, got %q", alias, name, cmd.Name())
		}
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}
