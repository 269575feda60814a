package lifecycle

import (
	"crypto/rand"

	"surprise-bag-api/models"

	"gorm.io/gorm"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6

	// ~36^6 codes make collisions negligible, but uniqueness is still
	// checked against live orders, never assumed.
	codeAttempts = 10
)

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}

// generatePickupCode returns a code unused by any live order. It runs on
// the same transaction that inserts the order, so two concurrent
// generations cannot both claim the same code.
func generatePickupCode(tx *gorm.DB) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.Order{}).Where("pickup_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errCodeExhausted
}
