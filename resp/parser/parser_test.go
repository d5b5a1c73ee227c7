package parser

import (
	"bytes"
	"godict/interface/resp"
	"godict/lib/utils"
	"godict/resp/protocol"
	"io"
	"testing"
)

func TestParseStream(t *testing.T) {
	replies := []resp.Reply{
		protocol.IntReply(4194467538),
		protocol.StatusReply([]byte("OK")),
		protocol.NewErrorReply([]byte("ERR unknown command 'frob'")),
		protocol.BulkStringReply([]byte("a\r\nb")), // 二进制安全
		protocol.BulkStringReply([]byte("$5")),     // 内容以 $ 开头也不是 header
		protocol.BulkStringReply([]byte{}),
		protocol.NullBulkStringReply(),
		protocol.ArrayReply([][]byte{
			[]byte("set"),
			[]byte("john"),
			[]byte("2\r\n2"),
		}),
		protocol.ArrayReply([][]byte{
			[]byte("set"),
			[]byte("ghost"),
			{},
		}),
		protocol.EmptyArrayReply(),
	}
	reqs := bytes.Buffer{}
	for _, re := range replies {
		reqs.Write(re.GetBytes())
	}
	reqs.Write([]byte("unset john\r\n")) // 文本协议
	expected := make([]resp.Reply, len(replies))
	copy(expected, replies)
	expected = append(expected, protocol.ArrayReply([][]byte{
		[]byte("unset"), []byte("john"),
	}))

	ch := ParseStream(bytes.NewReader(reqs.Bytes()))
	i := 0
	for payload := range ch {
		if payload.Err != nil {
			if payload.Err == io.EOF {
				break
			}
			t.Fatal(payload.Err)
		}
		if payload.Data == nil {
			t.Fatal("empty data")
		}
		if i >= len(expected) {
			t.Fatalf("unexpected extra payload: %q", payload.Data.GetBytes())
		}
		exp := expected[i]
		i++
		if !utils.BytesEqual(exp.GetBytes(), payload.Data.GetBytes()) {
			t.Errorf("parse failed: want %q, got %q", exp.GetBytes(), payload.Data.GetBytes())
		}
	}
	if i != len(expected) {
		t.Errorf("parsed %d payloads, want %d", i, len(expected))
	}
}

func TestParseStreamProtocolError(t *testing.T) {
	ch := ParseStream(bytes.NewReader([]byte("*bad\r\n+OK\r\n")))
	payload := <-ch
	if payload.Err == nil {
		t.Error("malformed header should yield an error payload")
	}
	// 协议错误之后解析继续
	payload = <-ch
	if payload.Err != nil {
		t.Fatal(payload.Err)
	}
	status, ok := protocol.FetchStatus(payload.Data)
	if !ok || string(status) != "OK" {
		t.Errorf("payload after error = %q", payload.Data.GetBytes())
	}
}
