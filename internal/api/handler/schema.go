package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. The central error handler renders it; handlers reference it here
// for the API docs only.
type errorResponse struct {
	Error string `json:"error"`
}
