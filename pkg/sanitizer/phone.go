package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Malaysian numbers first; SG covers cross-border hosts near Johor.
var supportedRegions = []string{
	"MY",
	"SG",
}

// NormalizePhone parses a WhatsApp contact number and returns it in E.164
// form, or the empty string when no supported region can parse it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return ""
}
