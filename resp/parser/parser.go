package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"godict/interface/resp"
	"godict/lib/logger"
	"godict/resp/protocol"
	"io"
	"runtime/debug"
	"strconv"
)

// Payload 储存了一条 resp.Reply 或是一个 error
type Payload struct {
	Data resp.Reply
	Err  error
}

// ParseStream 从 io.Reader 中持续读取数据，把解析出的 Payload 送进通道。
// 遇到 io 错误时通道会被关闭。
func ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go parse0(reader, ch)
	return ch
}

// readState 存储着从读取到解析的过程中需要传递的信息
type readState struct {
	readingMultiLine  bool
	expectedArgsCount int
	msgType           byte
	args              [][]byte
	bulkLen           int64
}

func (s *readState) finished() bool {
	return s.expectedArgsCount > 0 && len(s.args) == s.expectedArgsCount
}

func parse0(reader io.Reader, ch chan<- *Payload) {
	// 解析中的意外错误只记录日志，不让整个进程退出
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
		}
	}()
	bufReader := bufio.NewReader(reader)
	var state readState
	for {
		msg, ioErr, err := readLine(bufReader, &state)
		if err != nil {
			if ioErr {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
			ch <- &Payload{Err: err}
			state = readState{}
			continue
		}
		if !state.readingMultiLine {
			switch msg[0] {
			case '*':
				if err = parseMultiBulkHeader(msg, &state); err != nil {
					ch <- &Payload{Err: err}
					state = readState{}
					continue
				}
				if state.expectedArgsCount == 0 {
					ch <- &Payload{Data: protocol.EmptyArrayReply()}
					state = readState{}
				}
			case '$':
				if err = parseBulkHeader(msg, &state); err != nil {
					ch <- &Payload{Err: err}
					state = readState{}
					continue
				}
				if state.bulkLen == -1 {
					ch <- &Payload{Data: protocol.NullBulkStringReply()}
					state = readState{}
				}
			default:
				result, err := parseSingleLineReply(msg)
				ch <- &Payload{Data: result, Err: err}
				state = readState{}
			}
			continue
		}
		// 正在读取 Array 或 Bulk String 的 body
		if err = readBody(msg, &state); err != nil {
			ch <- &Payload{Err: err}
			state = readState{}
			continue
		}
		if state.finished() {
			var result resp.Reply
			if state.msgType == '*' {
				result = protocol.ArrayReply(state.args)
			} else {
				result = protocol.BulkStringReply(state.args[0])
			}
			ch <- &Payload{Data: result}
			state = readState{}
		}
	}
}

// readLine 读取一行，或者在 bulkLen 已知时读取固定长度（二进制安全）。
// bulkLen 由 readBody 在消费掉内容之后清零。
func readLine(bufReader *bufio.Reader, state *readState) ([]byte, bool, error) {
	if state.bulkLen <= 0 {
		msg, err := bufReader.ReadBytes('\n')
		if err != nil {
			return nil, true, err
		}
		if len(msg) < 2 || msg[len(msg)-2] != '\r' {
			return nil, false, protocolError(msg)
		}
		return msg, false, nil
	}
	// 固定长度需要算上末尾的 CRLF
	msg := make([]byte, state.bulkLen+2)
	if _, err := io.ReadFull(bufReader, msg); err != nil {
		return nil, true, err
	}
	return msg, false, nil
}

// parseMultiBulkHeader 解析 Array 类型的 header
func parseMultiBulkHeader(msg []byte, state *readState) error {
	nLines, err := strconv.ParseUint(string(msg[1:len(msg)-2]), 10, 32)
	if err != nil {
		return protocolError(msg)
	}
	state.expectedArgsCount = int(nLines)
	if nLines > 0 {
		state.msgType = '*'
		state.readingMultiLine = true
		state.args = make([][]byte, 0, nLines)
	}
	return nil
}

// parseBulkHeader 解析单独出现的 Bulk String 的 header
func parseBulkHeader(msg []byte, state *readState) error {
	bulkLen, err := strconv.ParseInt(string(msg[1:len(msg)-2]), 10, 64)
	if err != nil || bulkLen < -1 {
		return protocolError(msg)
	}
	if bulkLen == -1 {
		// null bulk string，由调用方发出回复并重置状态
		state.bulkLen = -1
		return nil
	}
	state.msgType = '$'
	state.readingMultiLine = true
	state.expectedArgsCount = 1
	state.bulkLen = bulkLen
	state.args = make([][]byte, 0, 1)
	return nil
}

// parseSingleLineReply 解析 Simple String、Error、Integer，
// 其余内容按空格拆分当作文本协议的命令行
func parseSingleLineReply(msg []byte) (resp.Reply, error) {
	trimmed := bytes.TrimSuffix(msg, []byte{'\r', '\n'})
	switch msg[0] {
	case '+':
		return protocol.StatusReply(trimmed[1:]), nil
	case '-':
		return protocol.NewErrorReply(trimmed[1:]), nil
	case ':':
		value, err := strconv.ParseInt(string(trimmed[1:]), 10, 64)
		if err != nil {
			return nil, protocolError(msg)
		}
		return protocol.IntReply(value), nil
	default:
		return protocol.ArrayReply(bytes.Split(trimmed, []byte{' '})), nil
	}
}

// readBody 把一段 Bulk String 的内容或下一个元素的 header 追加进 state
func readBody(msg []byte, state *readState) error {
	line := msg[:len(msg)-2]
	if state.bulkLen > 0 {
		// 定长读出的 Bulk String 内容，即使以 '$' 开头也不是 header
		state.args = append(state.args, line)
		state.bulkLen = 0
		return nil
	}
	if len(line) > 0 && line[0] == '$' {
		bulkLen, err := strconv.ParseInt(string(line[1:]), 10, 64)
		if err != nil || bulkLen < -1 {
			return protocolError(msg)
		}
		if bulkLen == -1 {
			// null 元素没有 body，当作空串保存
			state.args = append(state.args, []byte{})
			bulkLen = 0
		}
		state.bulkLen = bulkLen
		return nil
	}
	// 空 Bulk String 的 body 是一个空行
	state.args = append(state.args, line)
	return nil
}

func protocolError(msg []byte) error {
	return errors.New(fmt.Sprintf("protocol error: %q", string(msg)))
}
