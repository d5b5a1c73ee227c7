package database

import (
	"godict/lib/utils"
	"godict/resp/protocol"
	"godict/storage"
	"strings"
	"testing"
)

func makeTestDB() *DB {
	return NewDB(0, storage.NewMemStore())
}

func TestExecSetGet(t *testing.T) {
	db := makeTestDB()
	if r := db.Exec(nil, utils.StringsToLine("SET", "john", "22")); !protocol.CheckOKReply(r) {
		t.Fatalf("SET reply = %q", r.GetBytes())
	}
	r := db.Exec(nil, utils.StringsToLine("GET", "john"))
	if v, ok := protocol.FetchBulkString(r); !ok || string(v) != "22" {
		t.Errorf("GET reply = %q, want bulk \"22\"", r.GetBytes())
	}
	r = db.Exec(nil, utils.StringsToLine("GET", "nobody"))
	if string(r.GetBytes()) != "$-1\r\n" {
		t.Errorf("GET on absent key = %q, want null bulk", r.GetBytes())
	}
}

func TestExecSetWithoutValue(t *testing.T) {
	db := makeTestDB()
	if r := db.Exec(nil, utils.StringsToLine("SET", "ghost")); !protocol.CheckOKReply(r) {
		t.Fatalf("SET reply = %q", r.GetBytes())
	}
	// 没有值的键与缺失的键在 GET 看来没有区别
	r := db.Exec(nil, utils.StringsToLine("GET", "ghost"))
	if string(r.GetBytes()) != "$-1\r\n" {
		t.Errorf("GET on valueless key = %q, want null bulk", r.GetBytes())
	}
	r = db.Exec(nil, utils.StringsToLine("COUNT"))
	if code, ok := protocol.FetchCode(r); !ok || code != 1 {
		t.Errorf("COUNT reply = %q, want :1", r.GetBytes())
	}
}

func TestExecUpdate(t *testing.T) {
	db := makeTestDB()
	db.Exec(nil, utils.StringsToLine("SET", "john", "22"))
	db.Exec(nil, utils.StringsToLine("SET", "john", "23"))
	r := db.Exec(nil, utils.StringsToLine("GET", "john"))
	if v, _ := protocol.FetchBulkString(r); string(v) != "23" {
		t.Errorf("GET after update = %q, want \"23\"", v)
	}
	r = db.Exec(nil, utils.StringsToLine("COUNT"))
	if code, _ := protocol.FetchCode(r); code != 1 {
		t.Errorf("COUNT after update = %d, want 1", code)
	}
}

func TestExecUnset(t *testing.T) {
	db := makeTestDB()
	db.Exec(nil, utils.StringsToLine("SET", "john", "22"))
	if r := db.Exec(nil, utils.StringsToLine("UNSET", "john")); !protocol.CheckOKReply(r) {
		t.Fatalf("UNSET reply = %q", r.GetBytes())
	}
	r := db.Exec(nil, utils.StringsToLine("GET", "john"))
	if string(r.GetBytes()) != "$-1\r\n" {
		t.Errorf("GET after UNSET = %q, want null bulk", r.GetBytes())
	}
	// 删除不存在的键也回复 OK
	if r := db.Exec(nil, utils.StringsToLine("UNSET", "nobody")); !protocol.CheckOKReply(r) {
		t.Errorf("UNSET on absent key = %q", r.GetBytes())
	}
}

func TestExecHash(t *testing.T) {
	db := makeTestDB()
	r := db.Exec(nil, utils.StringsToLine("HASH", "AKDB"))
	if code, ok := protocol.FetchCode(r); !ok || code != 4194467538 {
		t.Errorf("HASH reply = %q, want :4194467538", r.GetBytes())
	}
}

func TestExecDump(t *testing.T) {
	db := makeTestDB()
	r := db.Exec(nil, utils.StringsToLine("DUMP"))
	if v, ok := protocol.FetchBulkString(r); !ok || string(v) != "empty dictionary\n" {
		t.Errorf("DUMP on empty dict = %q", r.GetBytes())
	}
	db.Exec(nil, utils.StringsToLine("SET", "john", "22"))
	r = db.Exec(nil, utils.StringsToLine("DUMP"))
	if v, _ := protocol.FetchBulkString(r); !strings.Contains(string(v), "john") {
		t.Errorf("DUMP output %q misses john", v)
	}
}

func TestExecNewID(t *testing.T) {
	db := makeTestDB()
	r := db.Exec(nil, utils.StringsToLine("NEWID"))
	if code, ok := protocol.FetchCode(r); !ok || code != 100 {
		t.Errorf("first NEWID = %q, want :100", r.GetBytes())
	}
	r = db.Exec(nil, utils.StringsToLine("NEWID"))
	if code, _ := protocol.FetchCode(r); code != 101 {
		t.Errorf("second NEWID = %q, want :101", r.GetBytes())
	}
}

func TestExecPing(t *testing.T) {
	db := makeTestDB()
	if r := db.Exec(nil, utils.StringsToLine("PING")); string(r.GetBytes()) != "+PONG\r\n" {
		t.Errorf("PING reply = %q", r.GetBytes())
	}
}

func TestExecUnknownCommand(t *testing.T) {
	db := makeTestDB()
	r := db.Exec(nil, utils.StringsToLine("FROB", "x"))
	if !protocol.CheckErrorReply(r) {
		t.Errorf("unknown command reply = %q, want error", r.GetBytes())
	}
}

func TestExecBadArity(t *testing.T) {
	db := makeTestDB()
	for _, line := range [][]string{
		{"GET"},
		{"GET", "a", "b"},
		{"SET"},
		{"SET", "a", "b", "c"},
		{"HASH"},
		{"COUNT", "x"},
	} {
		r := db.Exec(nil, utils.StringsToLine(line...))
		if !protocol.CheckErrorReply(r) {
			t.Errorf("%v reply = %q, want arity error", line, r.GetBytes())
		}
	}
}
