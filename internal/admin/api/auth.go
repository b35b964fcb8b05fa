// Client methods for the authentication endpoint.
package api

// LoginRequest is the body sent to POST /auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the access token returned on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against POST /auth and returns the access token.
func (c *Client) Login(email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.PostJSON("/auth", LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}
