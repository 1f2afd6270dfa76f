package domain

// User is the persisted identity record. The password hash never leaves the
// service layer: it is excluded from JSON so handlers can return the record
// as-is.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// SignupRequest is the body of POST /users/signup.
// Username and password must each be at least 6 characters; gin's binding
// rejects violations before any service logic runs.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=6"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=6"`
	Password string `json:"password" binding:"required,min=6"`
}
