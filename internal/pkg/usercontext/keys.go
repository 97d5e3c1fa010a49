package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey        = "authenticated"
	KeyUserID      = "user_id"
	KeyUsername    = "username"
	KeyUserContext = "USER_CONTEXT"
)
