// internal/pkg/email/types.go
package email

import "time"

// EmailType identifies the kind of transactional email
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeOrderStatusUpdate EmailType = "order_status_update"
)

// Email represents an outgoing email
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// TemplateData is the base data available to every email template
type TemplateData struct {
	StoreName string
	UserName  string
	UserEmail string
	Year      int
}

// OrderLine is a rendered order line for email templates
type OrderLine struct {
	Name     string
	Quantity int
	Subtotal string
}

// OrderConfirmationData feeds the order confirmation template
type OrderConfirmationData struct {
	TemplateData
	OrderNumber string
	OrderTotal  string
	Lines       []OrderLine
	PlacedAt    time.Time
}

// OrderStatusUpdateData feeds the status update template
type OrderStatusUpdateData struct {
	TemplateData
	OrderNumber string
	Status      string
}

// NewTemplateData builds the base template data
func NewTemplateData(storeName, userName, userEmail string) TemplateData {
	return TemplateData{
		StoreName: storeName,
		UserName:  userName,
		UserEmail: userEmail,
		Year:      time.Now().Year(),
	}
}
