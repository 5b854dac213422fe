package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "PT"

// normalizePhone formats raw as E.164 for region, or returns "" if the number
// is not a valid, dialable phone number.
func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
