package shell

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

const luaShellGlobal = "yahtzee_shell"

func getShell(L *lua.LState) *ShellController {
	ud, ok := L.GetGlobal(luaShellGlobal).(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Run is yahtzee_run(line) -> output | nil, error.
func Run(L *lua.LState) int {
	line := L.CheckString(1)
	sc := getShell(L)
	cmd, err := extractFields(line)
	if err == nil && (cmd.cmd == "exit" || cmd.cmd == "script") {
		err = fmt.Errorf("%s is not allowed in scripts", cmd.cmd)
	}
	var r *Response
	if err == nil {
		r, err = sc.dispatch(cmd, nil)
	}
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-script-command")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	out := ""
	if r != nil {
		out = r.message
	}
	L.Push(lua.LString(out))
	return 1
}

// Wait is yahtzee_wait().
func Wait(L *lua.LState) int {
	getShell(L).waitForRun()
	return 0
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal(luaShellGlobal, lsc)
	L.SetGlobal("yahtzee_run", L.NewFunction(Run))
	L.SetGlobal("yahtzee_wait", L.NewFunction(Wait))

	if err := L.DoFile(filepath); err != nil {
		return nil, err
	}
	return nil, nil
}
