package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register", nil) }
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", nil) }
func (f *fakeExec) Add(ctx context.Context) error { return f.record("add", nil) }
func (f *fakeExec) Export(ctx context.Context, a []string) error { return f.record("export", a) }
func (f *fakeExec) Get(ctx context.Context, a []string) error { return f.record("get", a) }
func (f *fakeExec) Reveal(ctx context.Context, a []string) error { return f.record("reveal", a) }
func (f *fakeExec) Update(ctx context.Context, a []string) error { return f.record("update", a) }
func (f *fakeExec) Delete(ctx context.Context, a []string) error { return f.record("delete", a) }
func (f *fakeExec) Tag(ctx context.Context, a []string) error { return f.record("tag", a) }
func (f *fakeExec) Untag(ctx context.Context, a []string) error { return f.record("untag", a) }
func (f *fakeExec) SetTags(ctx context.Context, a []string) error {
	return f.record("settags", a)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"list",
		"help",
		"login",
		"help",
		"l",
		"add",
		"get s1",
		"reveal s1",
		"update s1",
		"delete s1",
		"tag s1 work mail",
		"untag s1 work",
		"settags s1",
		"export save",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, []string{"login", "list", "add", "get", "reveal", "update", "delete",
		"tag", "untag", "settags", "export", "logout"}, exec.calls)
	assert.Equal(t, []string{"s1", "work", "mail"}, exec.args["tag"])
	assert.Equal(t, []string{"s1"}, exec.args["settags"])
	assert.Equal(t, []string{"save"}, exec.args["export"])

	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Available commands: register, login, exit")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "cv status> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageErrors(t *testing.T) {
	out := captureOutput(t)

	input := "get\nreveal\ntag s1\nuntag\nsettags\n"
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "usage: get <id>")
	assert.Contains(t, *out, "usage: reveal <id>")
	assert.Contains(t, *out, "usage: tag <id> <tag>...")
	assert.Contains(t, *out, "usage: untag <id> <tag>...")
	assert.Contains(t, *out, "usage: settags <id> [<tag>...]")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("\n\nregister"))

	assert.Equal(t, []string{"register"}, exec.calls)
}
