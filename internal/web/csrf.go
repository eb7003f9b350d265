package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"carbook/internal/models"
)

// deleteTokenID is the anti-forgery token identifier for removing one
// booking. Each booking row gets its own token.
func deleteTokenID(bookingID int64) string {
	return fmt.Sprintf("delete%d", bookingID)
}

// csrfToken derives the per-session token for an identifier. Stateless on
// purpose: only the session secret is stored, tokens are recomputed on
// verification.
func csrfToken(sess *models.Session, tokenID string) string {
	mac := hmac.New(sha256.New, []byte(sess.CSRFSecret))
	mac.Write([]byte(tokenID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyCSRFToken(sess *models.Session, tokenID, token string) bool {
	if sess == nil || sess.CSRFSecret == "" || token == "" {
		return false
	}
	expected := csrfToken(sess, tokenID)
	return hmac.Equal([]byte(expected), []byte(token))
}
