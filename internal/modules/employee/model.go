package employee

import "cloud.google.com/go/civil"

// Employee works at exactly one store. (StoreID, FullName) is unique.
type Employee struct {
	ID       int         `json:"id"`
	StoreID  int         `json:"storeId"`
	FullName string      `json:"fullName"`
	Role     string      `json:"role"`
	HireDate *civil.Date `json:"hireDate"`
	Active   bool        `json:"active"`
}

// Request is the payload for creating or replacing an employee.
// HireDate is optional and must be yyyy-MM-dd when present; Active defaults to true.
type Request struct {
	StoreID  int     `json:"storeId" validate:"gt=0,lte=2147483647"`
	FullName string  `json:"fullName" validate:"notblank,max=100"`
	Role     string  `json:"role" validate:"max=50"`
	HireDate *string `json:"hireDate" validate:"omitempty,isodate"`
	Active   *bool   `json:"active"`
}

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	StoreID *int
	Active  *bool
	Name    string
}
