package auth_module

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid session token")

// SignToken builds a signed session token of the form uid.expiry.signature.
func SignToken(secret string, uid uint, expiry time.Time) string {
	payload := fmt.Sprintf("%d.%d", uid, expiry.Unix())
	return payload + "." + sign(secret, payload)
}

// VerifyToken checks the signature and expiry and returns the user id.
func VerifyToken(secret, token string, now time.Time) (uint, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, ErrInvalidToken
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(sign(secret, payload)), []byte(parts[2])) {
		return 0, ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || now.Unix() > expiry {
		return 0, ErrInvalidToken
	}
	uid, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(uid), nil
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
