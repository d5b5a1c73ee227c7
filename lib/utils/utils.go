package utils

// BytesEqual 逐字节比较两个切片，nil 只和 nil 相等
func BytesEqual(a, b []byte) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// StringsToLine 把若干字符串转换成一条命令行
func StringsToLine(strs ...string) [][]byte {
	res := make([][]byte, len(strs))
	for i, str := range strs {
		res[i] = []byte(str)
	}
	return res
}
