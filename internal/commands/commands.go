// Package commands is the single command surface shared by every transport.
// Each command takes a JSON object of named arguments and returns one text
// Result; domain failures are rendered into that text, never returned as
// transport errors.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"

	"netacho/internal/autopilot"
	"netacho/internal/logging"
	"netacho/internal/neta"
	"netacho/internal/store"
	"netacho/internal/wizard"
)

// ErrUnknownCommand is returned by Call for a name no command answers to.
var ErrUnknownCommand = errors.New("commands: unknown command")

// Prefixes put in front of failure messages.
const (
	InfoPrefix  = "ℹ️ "
	ErrorPrefix = "❌ "
)

// Result is the only response shape.
type Result struct {
	Text string `json:"text"`
}

// Command is one named operation.
type Command struct {
	Name        string
	Description string

	input reflect.Type
	run   func(ctx context.Context, raw json.RawMessage) (string, error)
}

// define builds a command whose arguments decode into In.
func define[In any](name, desc string, fn func(ctx context.Context, in In) (string, error)) Command {
	return Command{
		Name:        name,
		Description: desc,
		input:       reflect.TypeFor[In](),
		run: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var in In
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
				if err := json.Unmarshal(raw, &in); err != nil {
					return "", neta.Errorf(neta.ErrInvalidRequest, "%s の引数を読み取れません: %v", name, err)
				}
			}
			return fn(ctx, in)
		},
	}
}

// Schema is the JSON schema of the command's arguments.
func (c Command) Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	s := r.ReflectFromType(c.input)
	s.Version = ""
	return s
}

// Router dispatches command calls to the engines.
type Router struct {
	wizard *wizard.Interactive
	guided *wizard.Guided
	auto   *autopilot.Orchestrator
	log    *slog.Logger

	commands []Command
	byName   map[string]Command
}

// New wires every engine over st. sessionKey names the interactive wizard
// session; empty means wizard.DefaultSessionKey.
func New(st store.Store, sessionKey string) *Router {
	r := &Router{
		wizard: wizard.NewInteractive(st, sessionKey),
		guided: wizard.NewGuided(st),
		auto:   autopilot.New(st),
		log:    logging.New("commands"),
	}
	r.commands = r.table()
	r.byName = make(map[string]Command, len(r.commands))
	for _, c := range r.commands {
		r.byName[c.Name] = c
	}
	return r
}

// Orchestrator exposes the full-auto engine for local drivers.
func (r *Router) Orchestrator() *autopilot.Orchestrator { return r.auto }

// Commands returns every command in registration order.
func (r *Router) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns the command names, sorted.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a command by name.
func (r *Router) Lookup(name string) (Command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Call runs the named command. The only error is ErrUnknownCommand; every
// other outcome, including panics, comes back as Result text.
func (r *Router) Call(ctx context.Context, name string, args json.RawMessage) (res Result, err error) {
	c, ok := r.byName[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("command panicked", "command", name, "panic", p)
			res, err = Result{Text: ErrorPrefix + fmt.Sprintf("内部エラーが発生しました: %v", p)}, nil
		}
	}()

	r.log.Debug("command called", "command", name)
	text, cerr := c.run(ctx, args)
	if cerr != nil {
		return Result{Text: r.render(name, cerr)}, nil
	}
	return Result{Text: text}, nil
}

// render turns an engine error into user-facing text.
func (r *Router) render(name string, err error) string {
	var ne *neta.Error
	if errors.As(err, &ne) {
		r.log.Info("command refused", "command", name, "reason", ne.Kind)
		if errors.Is(err, neta.ErrNotInitialized) {
			return InfoPrefix + ne.Msg
		}
		return ErrorPrefix + ne.Msg
	}
	r.log.Error("command failed", "command", name, "error", err)
	return ErrorPrefix + "処理中にエラーが発生しました: " + err.Error()
}
