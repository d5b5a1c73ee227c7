package protocol

import (
	"fmt"
	"godict/interface/resp"
)

type argumentCountErrorReply struct {
	cmd []byte
}

func (r *argumentCountErrorReply) GetBytes() []byte {
	return []byte(fmt.Sprintf("-ERR wrong argument count for '%s'\r\n", r.cmd))
}

func (r *argumentCountErrorReply) Error() string {
	return fmt.Sprintf("-ERR wrong argument count for '%s'", r.cmd)
}

func ArgumentCountErrorReply(cmd []byte) resp.ErrorReply {
	return &argumentCountErrorReply{cmd: cmd}
}

type unknownCommandErrorReply struct {
	cmd []byte
}

func (r *unknownCommandErrorReply) GetBytes() []byte {
	return []byte(fmt.Sprintf("-ERR unknown command '%s'\r\n", r.cmd))
}

func (r *unknownCommandErrorReply) Error() string {
	return fmt.Sprintf("-ERR unknown command '%s'", r.cmd)
}

func UnknownCommandErrorReply(cmd []byte) resp.ErrorReply {
	return &unknownCommandErrorReply{cmd: cmd}
}
