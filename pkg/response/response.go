package response

// Body shapes returned by the API. Which error shape a route uses is part of
// its contract: sign-up reports {"error": ...}, everything else reports
// {"errorMessage": ...}.

type ErrorBody struct {
	Error string `json:"error"`
}

type ErrorMessageBody struct {
	ErrorMessage string `json:"errorMessage"`
}

type MessageBody struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

func Err(msg string) ErrorBody { return ErrorBody{Error: msg} }

func ErrMessage(msg string) ErrorMessageBody { return ErrorMessageBody{ErrorMessage: msg} }
