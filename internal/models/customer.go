package models

// Customer is the optional 1:1 extension of a user, created on demand through
// the backend. A freshly registered user has no customer record yet; that is
// a normal state, not an error.
type Customer struct {
	ID                  int64  `json:"id"`
	UserID              string `json:"user_id"`
	PreferredPickupTime string `json:"preferred_pickup_time"`
	SpecialInstructions string `json:"special_instructions"`
	EmailNotifications  bool   `json:"email_notifications"`
	SMSNotifications    bool   `json:"sms_notifications"`
}

// Address belongs to exactly one customer. The default flag is advisory; the
// backend does not enforce uniqueness across a customer's addresses.
type Address struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	AddressType  string `json:"address_type"`
	IsDefault    bool   `json:"is_default"`
}
