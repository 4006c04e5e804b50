package strategy

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/domino14/yahtzee/cache"
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

const (
	luaShouldFinish = "should_finish_turn"
	luaChooseKeep   = "choose_dice_to_keep"
	luaChooseCat    = "choose_category"
)

var ErrScript = errors.New("strategy script error")

// Script is a strategy written in Lua. The script must define three global
// functions:
//
//	should_finish_turn(dice, rolls_left, sheet) -> boolean
//	choose_dice_to_keep(dice, rolls_left, sheet) -> {faces...}
//	choose_category(dice, sheet) -> category code, e.g. "full_house"
//
// dice is an array of five numbers. sheet is a table with fields
// available (array of codes), positive (code -> score for these dice),
// filled (code -> score), upper_total and total. A global function
// score(dice, code) is also provided.
//
// A Lua state is single-threaded, so each Script must be used by one game
// at a time. Once a call fails the script stops rolling and returns an
// invalid category, which ends the game; Err reports the cause.
type Script struct {
	L    *lua.LState
	path string
	err  error
}

// NewScript loads the Lua file at path. The file is compiled once and
// the result shared by every Script made from it, until the file changes.
func NewScript(path string) (*Script, error) {
	proto, err := compileScript(path)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrScript, path, err)
	}
	L := lua.NewState()
	L.SetGlobal("score", L.NewFunction(luaScore))
	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: running %s: %w", ErrScript, path, err)
	}
	return newScript(L, path)
}

func compileScript(path string) (*lua.FunctionProto, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("lua:%s:%d:%d", path, info.ModTime().UnixNano(), info.Size())
	obj, err := cache.Load(key, func(string) (any, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		chunk, err := parse.Parse(bufio.NewReader(f), path)
		if err != nil {
			return nil, err
		}
		return lua.Compile(chunk, path)
	})
	if err != nil {
		return nil, err
	}
	return obj.(*lua.FunctionProto), nil
}

// NewScriptFromString is NewScript for an in-memory script.
func NewScriptFromString(src string) (*Script, error) {
	L := lua.NewState()
	L.SetGlobal("score", L.NewFunction(luaScore))
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	return newScript(L, "<string>")
}

func newScript(L *lua.LState, path string) (*Script, error) {
	for _, fn := range []string{luaShouldFinish, luaChooseKeep, luaChooseCat} {
		if L.GetGlobal(fn).Type() != lua.LTFunction {
			L.Close()
			return nil, fmt.Errorf("%w: %s does not define %s", ErrScript, path, fn)
		}
	}
	return &Script{L: L, path: path}, nil
}

func (s *Script) Close() {
	s.L.Close()
}

// Err returns the first error raised by the script, if any.
func (s *Script) Err() error {
	return s.err
}

func (s *Script) fail(fn string, err error) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: %s in %s: %w", ErrScript, fn, s.path, err)
		log.Err(err).Str("script", s.path).Str("fn", fn).Msg("strategy-script-failed")
	}
}

func (s *Script) call(fn string, args ...lua.LValue) (lua.LValue, error) {
	err := s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal(fn),
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return lua.LNil, err
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return ret, nil
}

func (s *Script) ShouldFinishTurn(r dice.Roll, rollsLeft int, sheet *game.Sheet) bool {
	if s.err != nil {
		return true
	}
	ret, err := s.call(luaShouldFinish, s.diceTable(r), lua.LNumber(rollsLeft), s.sheetTable(r, sheet))
	if err != nil {
		s.fail(luaShouldFinish, err)
		return true
	}
	return lua.LVAsBool(ret)
}

func (s *Script) ChooseDiceToKeep(r dice.Roll, rollsLeft int, sheet *game.Sheet) []int {
	if s.err != nil {
		return nil
	}
	ret, err := s.call(luaChooseKeep, s.diceTable(r), lua.LNumber(rollsLeft), s.sheetTable(r, sheet))
	if err != nil {
		s.fail(luaChooseKeep, err)
		return nil
	}
	if ret == lua.LNil {
		return nil
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		s.fail(luaChooseKeep, fmt.Errorf("returned %s, want a table", ret.Type()))
		return nil
	}
	kept := make([]int, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		n, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			s.fail(luaChooseKeep, fmt.Errorf("element %d is not a number", i))
			return nil
		}
		v, ok := wholeNumber(n)
		if !ok {
			s.fail(luaChooseKeep, fmt.Errorf("element %d is not a whole number: %v", i, n))
			return nil
		}
		kept = append(kept, v)
	}
	return kept
}

func (s *Script) ChooseCategory(r dice.Roll, sheet *game.Sheet) scoring.Category {
	if s.err != nil {
		return scoring.Category(-1)
	}
	ret, err := s.call(luaChooseCat, s.diceTable(r), s.sheetTable(r, sheet))
	if err != nil {
		s.fail(luaChooseCat, err)
		return scoring.Category(-1)
	}
	c, err := scoring.ParseCategory(lua.LVAsString(ret))
	if err != nil {
		s.fail(luaChooseCat, err)
		return scoring.Category(-1)
	}
	return c
}

func (s *Script) diceTable(r dice.Roll) *lua.LTable {
	t := s.L.NewTable()
	for _, v := range r {
		t.Append(lua.LNumber(v))
	}
	return t
}

func (s *Script) sheetTable(r dice.Roll, sheet *game.Sheet) *lua.LTable {
	t := s.L.NewTable()
	avail := s.L.NewTable()
	for _, c := range sheet.AvailableCategories() {
		avail.Append(lua.LString(c.Code()))
	}
	positive := s.L.NewTable()
	for c, score := range sheet.AvailableCategoriesWithPositiveScore(r) {
		positive.RawSetString(c.Code(), lua.LNumber(score))
	}
	filled := s.L.NewTable()
	for _, c := range scoring.AllCategories() {
		if score, ok := sheet.Score(c); ok {
			filled.RawSetString(c.Code(), lua.LNumber(score))
		}
	}
	t.RawSetString("available", avail)
	t.RawSetString("positive", positive)
	t.RawSetString("filled", filled)
	t.RawSetString("upper_total", lua.LNumber(sheet.UpperSectionTotal()))
	t.RawSetString("total", lua.LNumber(sheet.TotalScore()))
	return t
}

// luaScore is score(dice, code) for scripts.
func luaScore(L *lua.LState) int {
	tbl := L.CheckTable(1)
	code := L.CheckString(2)
	vals := make([]int, 0, dice.NumDice)
	for i := 1; i <= tbl.Len(); i++ {
		v, ok := wholeNumber(lua.LVAsNumber(tbl.RawGetInt(i)))
		if !ok {
			L.RaiseError("die %d is not a whole number", i)
			return 0
		}
		vals = append(vals, v)
	}
	r, err := dice.FromSlice(vals)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	c, err := scoring.ParseCategory(code)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(scoring.Score(r, c)))
	return 1
}

// wholeNumber converts n to an int, refusing fractions.
func wholeNumber(n lua.LNumber) (int, bool) {
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
