package httpdto

// Response is the envelope of every JSON body the chat API returns.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(err string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   err,
		Code:    code,
	}
}

// WithRequestID stamps the response so clients can quote it when reporting failures.
func (r Response[T]) WithRequestID(id string) Response[T] {
	r.RequestID = id
	return r
}
