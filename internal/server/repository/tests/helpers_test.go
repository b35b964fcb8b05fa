package tests

import "github.com/pdv-labs/api-sales/internal/server/service"

func newUserParams(name, email, hash *string) service.UpdateUserParams {
	return service.UpdateUserParams{Name: name, Email: email, PasswordHash: hash}
}

func newProductParams(code, name *string, price *float64) service.UpdateProductParams {
	return service.UpdateProductParams{Code: code, Name: name, Price: price}
}
