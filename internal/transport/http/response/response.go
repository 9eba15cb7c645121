package response

// Resp 管理端统一包装
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（customMsg 为空时用默认文案）
func Error(code int, customMsg string) Resp {
	return New(code, message(code, customMsg), struct{}{})
}

// Detail 公开接口的错误体：{"detail": "..."}
type Detail struct {
	Detail string `json:"detail"`
}

func DetailOf(code int, customMsg string) Detail {
	return Detail{Detail: message(code, customMsg)}
}

func message(code int, customMsg string) string {
	if customMsg != "" {
		return customMsg
	}
	return CodeMsgMap[code]
}
