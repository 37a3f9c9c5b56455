package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	cards       []rawDef
	enemies     []rawDef
	encounters  []rawDef
	supplies    []rawDef
	consumables []rawDef
	events      []rawDef
	questions   []rawDef
	loadouts    []rawDef
}

// rawDef holds one Lua table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into content defs,
// validates references, and returns the immutable Catalog.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sort.Strings(files)

	return load(func(L *lua.LState) error {
		for _, f := range files {
			if err := L.DoFile(filepath.Join(dir, f)); err != nil {
				return fmt.Errorf("executing %s: %w", f, err)
			}
		}
		return nil
	})
}

// LoadFS loads .lua files from a filesystem (used for the embedded base
// content set).
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".lua") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content fs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in content fs")
	}
	sort.Strings(files)

	return load(func(L *lua.LState) error {
		for _, f := range files {
			src, err := fs.ReadFile(fsys, f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f, err)
			}
			if err := L.DoString(string(src)); err != nil {
				return fmt.Errorf("executing %s: %w", f, err)
			}
		}
		return nil
	})
}

// load runs the given executor against a fresh sandboxed VM, then
// compiles and validates the collected definitions.
func load(exec func(*lua.LState) error) (*Catalog, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := exec(L); err != nil {
		return nil, err
	}

	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	if err := validate(cat); err != nil {
		return nil, err
	}

	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
