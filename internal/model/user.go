package model

// AdminRoleID is the only role allowed to sign in to the back office.
const AdminRoleID = 1

// User is one entry of /users.
type User struct {
	ID        Numeric `json:"id"`
	UserID    Numeric `json:"user_id"`
	FirstName string  `json:"firstname"`
	LastName  string  `json:"lastname"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	RoleID    Numeric `json:"role_id"`
	RoleName  string  `json:"role_name"`
	CreatedAt string  `json:"created_at"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by /login.
type LoginResponse struct {
	Token string `json:"token"`
	Data  struct {
		UserID Numeric `json:"user_id"`
		RoleID Numeric `json:"role_id"`
	} `json:"data"`
	Message string `json:"message"`
}
