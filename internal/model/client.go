// internal/model/client.go
package model

// Client is a Jotform submission seen through the bridge. Phone and Email are
// pointers so an absent field can be told apart from an empty one.
type Client struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"nome"`
	Phone *string `json:"telefono,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Jotform question ids of the clients form
const (
	FieldName  = 5
	FieldPhone = 6
	FieldEmail = 7
)
