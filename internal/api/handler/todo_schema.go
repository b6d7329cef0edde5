package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses, including the create-todo validation failure.
type errorResponse struct {
	Error string `json:"error"`
}

type createTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// updateTodoRequest deliberately carries no validation: an update overwrites
// text and completed with whatever the client sent, matching the behaviour
// the front end depends on.
type updateTodoRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
