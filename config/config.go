package config

import (
	"bufio"
	"godict/datastruct/dict"
	"godict/lib/logger"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// ServerProperties 是服务器的全部可配置项
type ServerProperties struct {
	Bind       string `cfg:"bind"`
	Port       int    `cfg:"port"`
	MaxConnect int    `cfg:"maxconnect"`
	DictSize   int    `cfg:"dictsize"`
	LogDir     string `cfg:"logdir"`
}

var Properties *ServerProperties

func init() {
	Properties = &ServerProperties{
		Bind:   "127.0.0.1",
		Port:   6399,
		LogDir: "logs",
	}
}

func SetupConfigProperties(filename string) {
	file, err := os.Open(filename)
	if err != nil {
		panic(err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	Properties = parse(file)
}

// parse 先把配置文件里的原始键值对收进一个字典，再反射填充结构体。
// 保存配置项正是这个字典最初的用途。
func parse(reader io.Reader) *ServerProperties {
	res := &ServerProperties{}
	d := dict.NewDict(0)
	defer d.Destroy()
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " ")
		if pivot > 0 && pivot < len(line)-1 {
			key := strings.ToLower(line[0:pivot])
			val := strings.Trim(line[pivot+1:], " ")
			if err := d.Set(key, []byte(val)); err != nil {
				logger.Fatal(err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal(err)
	}
	fillProperties(res, d)
	return res
}

// fillProperties 按 cfg 标签从字典中取值填充结构体字段
func fillProperties(p *ServerProperties, d *dict.Dict) {
	fields := reflect.TypeOf(p).Elem()
	values := reflect.ValueOf(p).Elem()
	n := fields.NumField()
	for i := 0; i < n; i++ {
		field := fields.Field(i)
		fieldVal := values.Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok {
			key = field.Name
		}
		val := d.Get(strings.ToLower(key), nil)
		if val == nil {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(string(val))
		case reflect.Int:
			intV, err := strconv.ParseInt(string(val), 10, 64)
			if err == nil {
				fieldVal.SetInt(intV)
			}
		case reflect.Bool:
			fieldVal.SetBool("yes" == string(val))
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				sliceV := strings.Split(string(val), ",")
				fieldVal.Set(reflect.ValueOf(sliceV))
			}
		}
	}
}
