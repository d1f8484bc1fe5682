package workspaceservice

// Tenant арендатор из WorkspaceService
type Tenant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // IANA, например "Europe/Moscow"
}

// ErrorResponse модель ошибки от WorkspaceService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
