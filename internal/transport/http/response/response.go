package response

type Resp struct {
	Code    int               `json:"code"`
	Msg     string            `json:"msg"`
	Data    interface{}       `json:"data"`
	Details map[string]string `json:"details,omitempty"`
}

// New never leaves data as null.
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Message is a success response with a custom message.
func Message(msg string, data interface{}) Resp {
	if msg == "" {
		msg = CodeMsgMap[CodeOK]
	}
	return New(CodeOK, msg, data)
}

// Error uses the default message of code unless customMsg is set.
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

func Invalid(msg string, details map[string]string) Resp {
	r := Error(CodeBadRequest, msg)
	r.Details = details
	return r
}
