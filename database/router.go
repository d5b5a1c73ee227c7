package database

import "strings"

var cmdMap = make(map[string]*command)

type command struct {
	executor ExecFunc
	arity    int
}

// registerCommand 登记一条命令。
// arity 是包括命令名在内的参数个数，负数表示至少 -arity 个。
func registerCommand(name string, executor ExecFunc, arity int) {
	name = strings.ToLower(name)
	cmdMap[name] = &command{
		executor: executor,
		arity:    arity,
	}
}

func invalidArity(n int, cmd *command) bool {
	if cmd.arity >= 0 {
		return n != cmd.arity
	}
	return n < -cmd.arity
}
