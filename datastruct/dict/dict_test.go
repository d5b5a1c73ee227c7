package dict

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	// 与参考实现一致的固定校验值
	if h := Hash("AKDB"); h != 4194467538 {
		t.Errorf("Hash(\"AKDB\") = %d, want 4194467538", h)
	}
	if h := Hash(""); h != 0 {
		t.Errorf("Hash(\"\") = %d, want 0", h)
	}
	if Hash("john") != Hash("john") {
		t.Error("Hash is not deterministic")
	}
}

func TestNewDictFloor(t *testing.T) {
	if c := NewDict(15).Cap(); c != 128 {
		t.Errorf("Cap() = %d, want floor 128", c)
	}
	if c := NewDict(0).Cap(); c != 128 {
		t.Errorf("Cap() = %d, want floor 128", c)
	}
	if c := NewDict(500).Cap(); c != 500 {
		t.Errorf("Cap() = %d, want 500", c)
	}
}

func TestSetGet(t *testing.T) {
	d := NewDict(15)
	if err := d.Set("john", []byte("22")); err != nil {
		t.Fatal(err)
	}
	if v := d.Get("john", nil); string(v) != "22" {
		t.Errorf("Get(\"john\") = %q, want \"22\"", v)
	}
	if v := d.Get("nobody", []byte("def")); string(v) != "def" {
		t.Errorf("Get on absent key = %q, want default", v)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestUpdate(t *testing.T) {
	d := NewDict(0)
	_ = d.Set("john", []byte("22"))
	_ = d.Set("john", []byte("23"))
	if v := d.Get("john", nil); string(v) != "23" {
		t.Errorf("Get after update = %q, want \"23\"", v)
	}
	if d.Len() != 1 {
		t.Errorf("Len() after update = %d, want 1", d.Len())
	}
	// 重复写入同一个值也不会改变 count
	_ = d.Set("john", []byte("23"))
	if d.Len() != 1 {
		t.Errorf("Len() after idempotent update = %d, want 1", d.Len())
	}
}

func TestUnset(t *testing.T) {
	d := NewDict(0)
	for k, v := range map[string]string{
		"john": "22", "paul": "34", "ariana": "38", "joe": "52",
	} {
		_ = d.Set(k, []byte(v))
	}
	d.Unset("john")
	if v := d.Get("john", nil); v != nil {
		t.Errorf("Get after unset = %q, want nil", v)
	}
	if d.Len() != 3 {
		t.Errorf("Len() after unset = %d, want 3", d.Len())
	}
	// 删除不存在的键不改变任何状态
	d.Unset("nobody")
	if d.Len() != 3 {
		t.Errorf("Len() after unset of absent key = %d, want 3", d.Len())
	}
	if v := d.Get("paul", nil); string(v) != "34" {
		t.Errorf("Get(\"paul\") = %q, want \"34\"", v)
	}
}

func TestValuelessKey(t *testing.T) {
	d := NewDict(0)
	if err := d.Set("ghost", nil); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
	// 键存在但没有值：即使给了默认值也返回 nil，默认值只用于键不存在
	if v := d.Get("ghost", []byte("fallback")); v != nil {
		t.Errorf("Get on valueless key = %q, want nil", v)
	}
	var buf bytes.Buffer
	d.Dump(&buf)
	if !strings.Contains(buf.String(), "[UNDEF]") {
		t.Errorf("Dump output %q does not mark the valueless key", buf.String())
	}
}

func TestGrowth(t *testing.T) {
	d := NewDict(0)
	n := d.Cap() + 1
	for i := 0; i < n; i++ {
		if err := d.Set(fmt.Sprintf("key%d", i), []byte(fmt.Sprintf("val%d", i))); err != nil {
			t.Fatal(err)
		}
	}
	if d.Cap() != 256 {
		t.Errorf("Cap() after growth = %d, want 256", d.Cap())
	}
	if d.Len() != n {
		t.Errorf("Len() = %d, want %d", d.Len(), n)
	}
	for i := 0; i < n; i++ {
		if v := d.Get(fmt.Sprintf("key%d", i), nil); string(v) != fmt.Sprintf("val%d", i) {
			t.Fatalf("key%d lost after growth, got %q", i, v)
		}
	}
}

func TestDumpEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewDict(0).Dump(&buf)
	if buf.String() != "empty dictionary\n" {
		t.Errorf("Dump of empty dict = %q", buf.String())
	}
}

func TestDump(t *testing.T) {
	d := NewDict(0)
	_ = d.Set("john", []byte("22"))
	_ = d.Set("paul", []byte("34"))
	var buf bytes.Buffer
	d.Dump(&buf)
	out := buf.String()
	if !strings.Contains(out, fmt.Sprintf("%20s\t[22]\n", "john")) {
		t.Errorf("Dump output %q misses john", out)
	}
	if !strings.Contains(out, fmt.Sprintf("%20s\t[34]\n", "paul")) {
		t.Errorf("Dump output %q misses paul", out)
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("Dump printed %d lines, want 2", n)
	}
}

func TestDestroy(t *testing.T) {
	d := NewDict(0)
	_ = d.Set("john", []byte("22"))
	d.Destroy()
	if err := d.Set("john", []byte("23")); err != ErrDestroyed {
		t.Errorf("Set after Destroy = %v, want ErrDestroyed", err)
	}
	if v := d.Get("john", []byte("def")); string(v) != "def" {
		t.Errorf("Get after Destroy = %q, want default", v)
	}
	if d.Len() != 0 || d.Cap() != 0 {
		t.Errorf("Len/Cap after Destroy = %d/%d, want 0/0", d.Len(), d.Cap())
	}

	var nilDict *Dict
	nilDict.Destroy()
	nilDict.Unset("john")
	if err := nilDict.Set("john", nil); err != ErrNilDict {
		t.Errorf("Set on nil dict = %v, want ErrNilDict", err)
	}
	if v := nilDict.Get("john", []byte("def")); string(v) != "def" {
		t.Errorf("Get on nil dict = %q, want default", v)
	}
}

func TestEmptyKey(t *testing.T) {
	d := NewDict(0)
	if err := d.Set("", []byte("empty")); err != nil {
		t.Fatal(err)
	}
	if v := d.Get("", nil); string(v) != "empty" {
		t.Errorf("Get(\"\") = %q, want \"empty\"", v)
	}
}

func TestOwnership(t *testing.T) {
	d := NewDict(0)
	val := []byte("22")
	_ = d.Set("john", val)
	val[0] = 'x'
	if v := d.Get("john", nil); string(v) != "22" {
		t.Errorf("stored value changed with caller's buffer: %q", v)
	}
}
