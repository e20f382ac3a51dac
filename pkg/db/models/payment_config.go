package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentConfig holds the bank-transfer details the store publishes. Exactly
// one row should be active at a time; checkout snapshots it into the order.
type PaymentConfig struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BankName      string    `gorm:"column:bank_name;not null"`
	AccountName   string    `gorm:"column:account_name;not null"`
	AccountNumber string    `gorm:"column:account_number;not null"`
	QRCodeURL     *string   `gorm:"column:qr_code_url"`
	IsActive      bool      `gorm:"column:is_active;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
