package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inkwell/internal/rules"
)

// Host owns one sandboxed Lua state and registers the rules its scripts
// declare. Not safe for concurrent use; load scripts before the editor
// starts taking input.
type Host struct {
	L      *lua.LState
	reg    *rules.Registry
	loaded []string
	closed bool
}

// NewHost creates a host registering into the given registry.
func NewHost(reg *rules.Registry) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	// Base, table, and string libraries only; no io, os, or debug.
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}
	// Remove the load family so scripts cannot smuggle code past the
	// sandboxed entry point.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	h := &Host{L: L, reg: reg}
	h.installModule()
	return h
}

// Close releases the Lua state.
func (h *Host) Close() {
	if !h.closed {
		h.closed = true
		h.L.Close()
	}
}

// Loaded returns the paths of successfully loaded scripts.
func (h *Host) Loaded() []string {
	out := make([]string, len(h.loaded))
	copy(out, h.loaded)
	return out
}

// LoadFile runs a single rule script.
func (h *Host) LoadFile(path string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	h.loaded = append(h.loaded, path)
	return nil
}

// LoadString runs a rule script from source. Used by tests and embedded
// configuration.
func (h *Host) LoadString(name, source string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.L.DoString(source); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	h.loaded = append(h.loaded, name)
	return nil
}

// LoadDir runs every *.lua file in a directory, in name order. A missing
// directory is not an error.
func (h *Host) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := h.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// installModule exposes the inkwell table to scripts.
func (h *Host) installModule() {
	mod := h.L.NewTable()
	h.L.SetField(mod, "mark_rule", h.L.NewFunction(h.markRule))
	h.L.SetField(mod, "block_rule", h.L.NewFunction(h.blockRule))
	h.L.SetGlobal("inkwell", mod)
}

// markRule implements inkwell.mark_rule{...}.
func (h *Host) markRule(L *lua.LState) int {
	t := L.CheckTable(1)
	name, err := requireString(t, "name")
	if err != nil {
		L.RaiseError("%v", err)
	}
	delimiter, err := requireString(t, "delimiter")
	if err != nil {
		L.RaiseError("%v", err)
	}
	mark, err := requireString(t, "mark")
	if err != nil {
		L.RaiseError("%v", err)
	}
	mode := rules.ModeInput
	if s, _ := optionalString(t, "mode"); s == "paste" {
		mode = rules.ModePaste
	}
	attrs := h.attrsFunc(t)

	rule, err := rules.NewMarkRule(name, delimiter, mark, mode, attrs)
	if err != nil {
		L.RaiseError("mark_rule %s: %v", name, err)
	}
	if err := h.reg.Register(rule); err != nil {
		L.RaiseError("mark_rule %s: %v", name, err)
	}
	return 0
}

// blockRule implements inkwell.block_rule{...}.
func (h *Host) blockRule(L *lua.LState) int {
	t := L.CheckTable(1)
	name, err := requireString(t, "name")
	if err != nil {
		L.RaiseError("%v", err)
	}
	pattern, err := requireString(t, "find")
	if err != nil {
		L.RaiseError("%v", err)
	}
	typeName, err := requireString(t, "type")
	if err != nil {
		L.RaiseError("%v", err)
	}
	find, err := regexp.Compile(pattern)
	if err != nil {
		L.RaiseError("block_rule %s: %v", name, err)
	}
	rule := rules.NewTextblockRule(name, find, typeName, h.attrsFunc(t))
	if err := h.reg.Register(rule); err != nil {
		L.RaiseError("block_rule %s: %v", name, err)
	}
	return 0
}

// attrsFunc wraps a declaration's attrs function, if any. A Lua error at
// match time yields nil attributes with an "error" marker key, which the
// type check downstream rejects, so a broken script cannot half-apply.
func (h *Host) attrsFunc(t *lua.LTable) rules.AttrsFunc {
	fn, ok := h.L.GetField(t, "attrs").(*lua.LFunction)
	if !ok {
		return nil
	}
	return func(captures []string) map[string]any {
		h.L.Push(fn)
		h.L.Push(capturesTable(h.L, captures))
		if err := h.L.PCall(1, 1, nil); err != nil {
			return map[string]any{"\x00lua-error": err.Error()}
		}
		ret := h.L.Get(-1)
		h.L.Pop(1)
		result, ok := toGoValue(ret).(map[string]any)
		if !ok {
			return map[string]any{"\x00lua-error": "attrs did not return a table"}
		}
		return result
	}
}

func requireString(t *lua.LTable, field string) (string, error) {
	if s, ok := t.RawGetString(field).(lua.LString); ok && s != "" {
		return string(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingField, field)
}

func optionalString(t *lua.LTable, field string) (string, bool) {
	if s, ok := t.RawGetString(field).(lua.LString); ok {
		return string(s), true
	}
	return "", false
}
