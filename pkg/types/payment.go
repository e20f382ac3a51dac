package types

// PaymentSnapshot embeds the active bank-transfer configuration into an order
// at creation time, plus the transfer reference the customer must quote.
type PaymentSnapshot struct {
	BankName      string  `json:"bank_name"`
	AccountName   string  `json:"account_name"`
	AccountNumber string  `json:"account_number"`
	QRCodeURL     *string `json:"qr_code_url,omitempty"`
	TransferNote  string  `json:"transfer_note"`
}
