package messaging

import (
	"errors"
	"fmt"
	"strings"
)

// PhoneNormalizer rewrites a stored mobile number into the international
// format the message gateway expects.
type PhoneNormalizer interface {
	Normalize(mobileNo string) (string, error)
}

// TrunkPrefixNormalizer rewrites local numbers that start with a trunk
// prefix ("03001234567") to a fixed country code ("+923001234567"). Numbers
// already in international format pass through unchanged.
type TrunkPrefixNormalizer struct {
	CountryCode string
	TrunkPrefix string
}

func NewTrunkPrefixNormalizer(countryCode string) TrunkPrefixNormalizer {
	return TrunkPrefixNormalizer{
		CountryCode: countryCode,
		TrunkPrefix: "0",
	}
}

func (n TrunkPrefixNormalizer) Normalize(mobileNo string) (string, error) {
	mobileNo = strings.TrimSpace(mobileNo)
	if mobileNo == "" {
		return "", errors.New("mobile number is empty")
	}
	if strings.HasPrefix(mobileNo, "+") {
		return mobileNo, nil
	}
	if !strings.HasPrefix(mobileNo, n.TrunkPrefix) {
		return "", fmt.Errorf("unrecognized local number format: %s", mobileNo)
	}
	return n.CountryCode + mobileNo[len(n.TrunkPrefix):], nil
}
