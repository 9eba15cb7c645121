package response

// 业务码直接沿用 HTTP 语义
const (
	CodeOK              = 0
	CodeNotFound        = 404
	CodeTooLarge        = 413
	CodeUnprocessable   = 422
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeServiceBusy     = 503
	CodeGatewayTimeout  = 504
)

var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeNotFound:        "Not Found",
	CodeTooLarge:        "Request Entity Too Large",
	CodeUnprocessable:   "Unprocessable Entity",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeServiceBusy:     "Service Unavailable",
	CodeGatewayTimeout:  "Gateway Timeout",
}

// Status 业务码对应的 HTTP 状态；CodeOK 为 200
func Status(code int) int {
	if code == CodeOK {
		return 200
	}
	return code
}
