// Client methods for the user, product and sale endpoints.
package api

import "fmt"

// User mirrors the server's user representation.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product mirrors the server's product representation.
type Product struct {
	ID    int64   `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Sale mirrors the server's sale representation.
type Sale struct {
	ID       int64     `json:"id"`
	User     *User     `json:"user"`
	Products []Product `json:"products"`
}

// CreateUserRequest is the body sent to POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser registers a new user. The endpoint is public.
func (c *Client) CreateUser(name, email, password string) (User, error) {
	var resp User
	err := c.PostJSON("/users", CreateUserRequest{Name: name, Email: email, Password: password}, &resp, "")
	return resp, err
}

// ListUsers fetches all users. Requires an access token.
func (c *Client) ListUsers(accessToken string) ([]User, error) {
	var resp []User
	err := c.GetJSON("/users", &resp, accessToken)
	return resp, err
}

// CreateProductRequest is the body sent to POST /products.
type CreateProductRequest struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CreateProduct adds a catalog item.
func (c *Client) CreateProduct(code, name string, price float64) (Product, error) {
	var resp Product
	err := c.PostJSON("/products", CreateProductRequest{Code: code, Name: name, Price: price}, &resp, "")
	return resp, err
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts() ([]Product, error) {
	var resp []Product
	err := c.GetJSON("/products", &resp, "")
	return resp, err
}

// CreateSaleRequest is the body sent to POST /sales.
// Identifiers travel as strings, matching what the server expects.
type CreateSaleRequest struct {
	User     string   `json:"user"`
	Products []string `json:"products"`
}

// CreateSale records a sale. Requires an access token.
func (c *Client) CreateSale(userID string, productIDs []string, accessToken string) (Sale, error) {
	var resp Sale
	err := c.PostJSON("/sales", CreateSaleRequest{User: userID, Products: productIDs}, &resp, accessToken)
	return resp, err
}

// ListSales fetches all sales. Requires an access token.
func (c *Client) ListSales(accessToken string) ([]Sale, error) {
	var resp []Sale
	err := c.GetJSON("/sales", &resp, accessToken)
	return resp, err
}

// GetSale fetches one sale by id. Requires an access token.
func (c *Client) GetSale(id int64, accessToken string) (Sale, error) {
	var resp Sale
	err := c.GetJSON(fmt.Sprintf("/sales/%d", id), &resp, accessToken)
	return resp, err
}
