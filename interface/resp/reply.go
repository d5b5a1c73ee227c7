package resp

// Reply 是对协议中一条回复消息的抽象
type Reply interface {
	GetBytes() []byte
}

// ErrorReply 是用于表示错误信息的 Reply
type ErrorReply interface {
	GetBytes() []byte
	Error() string
}
