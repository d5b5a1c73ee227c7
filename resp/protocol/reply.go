package protocol

import (
	"bytes"
	"fmt"
	"godict/interface/resp"
	"godict/lib/utils"
)

var (
	okBytes       = []byte("+OK\r\n")
	pongBytes     = []byte("+PONG\r\n")
	nullBulkBytes = []byte("$-1\r\n")
	emptyArrBytes = []byte("*0\r\n")
)

type (
	okReply             struct{}
	pongReply           struct{}
	nullBulkStringReply struct{}
	emptyArrayReply     struct{}
	statusReply         struct{ status []byte }
	simpleErrorReply    struct{ info []byte }
	intReply            struct{ code int64 }
	bulkReply           struct{ arg []byte }
	arrayReply          struct{ args [][]byte }
)

// CheckErrorReply 判断一条回复是否为错误回复
func CheckErrorReply(r resp.Reply) bool {
	return '-' == r.GetBytes()[0]
}

func CheckOKReply(r resp.Reply) bool {
	return utils.BytesEqual(okBytes, r.GetBytes())
}

// CheckNullBulkReply 判断一条回复是否表示值不存在
func CheckNullBulkReply(r resp.Reply) bool {
	return utils.BytesEqual(nullBulkBytes, r.GetBytes())
}

func (r *okReply) GetBytes() []byte {
	return okBytes
}

func (r *pongReply) GetBytes() []byte {
	return pongBytes
}

func (r *nullBulkStringReply) GetBytes() []byte {
	return nullBulkBytes
}

func (r *emptyArrayReply) GetBytes() []byte {
	return emptyArrBytes
}

func (r *statusReply) GetBytes() []byte {
	return []byte(fmt.Sprintf("+%s\r\n", r.status))
}

func (r *simpleErrorReply) GetBytes() []byte {
	return []byte(fmt.Sprintf("-%s\r\n", r.info))
}

func (r *simpleErrorReply) Error() string {
	return string(r.info)
}

func (r *intReply) GetBytes() []byte {
	return []byte(fmt.Sprintf(":%d\r\n", r.code))
}

func (r *bulkReply) GetBytes() []byte {
	return convertArg(r.arg)
}

func (r *arrayReply) GetBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("*%d\r\n", len(r.args)))
	for _, arg := range r.args {
		buf.Write(convertArg(arg))
	}
	return buf.Bytes()
}

func OkReply() resp.Reply {
	return &okReply{}
}

func PongReply() resp.Reply {
	return &pongReply{}
}

// NullBulkStringReply 表示值不存在；键缺失和键存在但没有值都用它回复
func NullBulkStringReply() resp.Reply {
	return &nullBulkStringReply{}
}

func EmptyArrayReply() resp.Reply {
	return &emptyArrayReply{}
}

func StatusReply(status []byte) resp.Reply {
	return &statusReply{status: status}
}

func NewErrorReply(info []byte) resp.ErrorReply {
	return &simpleErrorReply{info: info}
}

func IntReply(code int64) resp.Reply {
	return &intReply{code: code}
}

func BulkStringReply(arg []byte) resp.Reply {
	return &bulkReply{arg: arg}
}

func ArrayReply(args [][]byte) resp.Reply {
	return &arrayReply{args: args}
}

func FetchStatus(r resp.Reply) (status []byte, ok bool) {
	st, ok := r.(*statusReply)
	if !ok {
		return nil, false
	}
	return st.status, true
}

func FetchCode(r resp.Reply) (code int64, ok bool) {
	ir, ok := r.(*intReply)
	if !ok {
		return 0, false
	}
	return ir.code, true
}

func FetchBulkString(r resp.Reply) (str []byte, ok bool) {
	br, ok := r.(*bulkReply)
	if !ok {
		return nil, false
	}
	return br.arg, true
}

func FetchArrayArgs(r resp.Reply) (args [][]byte, ok bool) {
	ar, ok := r.(*arrayReply)
	if !ok {
		return nil, false
	}
	return ar.args, true
}

func convertArg(arg []byte) []byte {
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(arg), arg))
}
