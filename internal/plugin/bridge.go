package plugin

import (
	lua "github.com/yuin/gopher-lua"
)

// toGoValue converts a Lua value to a Go value. Tables become maps keyed
// by string; integral numbers become int.
func toGoValue(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		out := map[string]any{}
		v.ForEach(func(k, val lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				out[string(ks)] = toGoValue(val)
			}
		})
		return out
	default:
		return nil
	}
}

// capturesTable builds the Lua table handed to attribute functions:
// captures[0] is the whole match, captures[1..] the groups.
func capturesTable(L *lua.LState, captures []string) *lua.LTable {
	t := L.NewTable()
	for i, c := range captures {
		t.RawSetInt(i, lua.LString(c))
	}
	return t
}
