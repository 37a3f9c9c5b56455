package content

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua content constructors as globals. All
// constructors are curried: Card("id") returns a function taking a table.
func registerAPI(L *lua.LState, coll *collector) {
	curried := func(sink *[]rawDef) lua.LGFunction {
		return func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		}
	}

	L.SetGlobal("Card", L.NewFunction(curried(&coll.cards)))
	L.SetGlobal("Enemy", L.NewFunction(curried(&coll.enemies)))
	L.SetGlobal("Encounter", L.NewFunction(curried(&coll.encounters)))
	L.SetGlobal("Supply", L.NewFunction(curried(&coll.supplies)))
	L.SetGlobal("Consumable", L.NewFunction(curried(&coll.consumables)))
	L.SetGlobal("Event", L.NewFunction(curried(&coll.events)))
	L.SetGlobal("Question", L.NewFunction(curried(&coll.questions)))
	L.SetGlobal("Loadout", L.NewFunction(curried(&coll.loadouts)))
}
