package response

// Error codes mirror HTTP statuses; CodeOK is the only non-HTTP value.
const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodeConflict           = 409
	CodeRequestTooLarge    = 413
	CodeUnprocessable      = 422
	CodeTooManyRequests    = 429
	CodeServerError        = 500
	CodeServiceUnavailable = 503
	CodeTimeout            = 504
)

var CodeMsgMap = map[int]string{
	CodeOK:                 "OK",
	CodeBadRequest:         "Bad Request",
	CodeNotFound:           "Not Found",
	CodeConflict:           "Conflict",
	CodeRequestTooLarge:    "Request Entity Too Large",
	CodeUnprocessable:      "Unprocessable Entity",
	CodeTooManyRequests:    "Too Many Requests",
	CodeServerError:        "Internal Server Error",
	CodeServiceUnavailable: "Service Unavailable",
	CodeTimeout:            "Gateway Timeout",
}

// Status is the HTTP status that carries code.
func Status(code int) int {
	if code == CodeOK {
		return 200
	}
	return code
}
