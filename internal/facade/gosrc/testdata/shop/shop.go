// kgen:EntityRegistry internal=true value=Order,billing.Invoice,Unknown
package shop

import (
	"time"

	"example.com/shop/billing"
)

// Customer places orders.
//
// kgen:Entity
type Customer struct {
	Name      string
	Email     *string
	Tags      []string
	Avatar    []byte
	Scores    map[string]int
	CreatedAt time.Time
	Cache     map[string]string `json:"-"`
	//kgen:Transient
	Session string
	secret  string
}

func NewCustomer(name string, email *string) *Customer {
	return &Customer{Name: name, Email: email}
}

func (c *Customer) Secret() string { return c.secret }

type Order struct {
	ID       int64
	Lines    []Line
	Invoice  *billing.Invoice
	Customer *Customer //kgen:Nullable
}

type Line struct {
	SKU string
	Qty int
}
