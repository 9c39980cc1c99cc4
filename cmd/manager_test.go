package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
)

type echoCommand struct {
	name string
}

func (e *echoCommand) Name() string        { return e.name }
func (e *echoCommand) Description() string { return "echo arguments" }
func (e *echoCommand) Usage() string       { return e.name + " [-u] <text>..." }

func (e *echoCommand) Execute(ctx context.Context, api API, args *CommandArgs, w io.Writer) (int, error) {
	text := strings.Join(args.Args, " ")
	if args.Bool("upper") {
		text = strings.ToUpper(text)
	}
	fmt.Fprint(w, text)
	return 0, nil
}

func (e *echoCommand) GetFlags() *CommandFlagSet {
	return NewFlagSet(&CommandFlag{Name: "upper", Short: "u", Type: FlagBool})
}

func TestManager_RegisterAndExecute(t *testing.T) {
	m := NewManager()
	if err := m.Register(&echoCommand{name: "echo"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := m.Register(&echoCommand{name: "echo"}); err == nil {
		t.Error("Expected duplicate registration to fail")
	}

	var out bytes.Buffer
	code, err := m.Execute(t.Context(), nil, &out, "echo", "-u", "hello", "menu")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
	if out.String() != "HELLO MENU" {
		t.Errorf("Expected 'HELLO MENU', got %q", out.String())
	}
}

func TestManager_Errors(t *testing.T) {
	m := NewManager()
	m.Register(&echoCommand{name: "echo"})

	if code, err := m.Execute(t.Context(), nil, io.Discard); err == nil || code != 1 {
		t.Errorf("Expected failure without command, got %d / %v", code, err)
	}
	if _, err := m.Execute(t.Context(), nil, io.Discard, "missing"); err == nil {
		t.Error("Expected unknown command to fail")
	}
	if _, err := m.Execute(t.Context(), nil, io.Discard, "echo", "--bogus"); err == nil {
		t.Error("Expected parse error")
	}
	if err := m.Register(nil); err == nil {
		t.Error("Expected nil command to be rejected")
	}
	if err := m.Register(&echoCommand{}); err == nil {
		t.Error("Expected empty name to be rejected")
	}
}

func TestManager_ListAndUnregister(t *testing.T) {
	m := NewManager()
	for _, name := range []string{"mv", "ls", "cat"} {
		if err := m.Register(&echoCommand{name: name}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	var names []string
	for _, command := range m.List() {
		names = append(names, command.Name())
	}
	if strings.Join(names, ",") != "cat,ls,mv" {
		t.Errorf("Expected sorted commands, got %v", names)
	}

	if err := m.Unregister("ls"); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}
	if err := m.Unregister("ls"); err == nil {
		t.Error("Expected second unregister to fail")
	}
	if _, err := m.Get("ls"); err == nil {
		t.Error("Expected ls to be gone")
	}
}
