package client

import "regexp"

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

func validatePhone(phone string) error {
	if !e164Pattern.MatchString(phone) {
		return &InvalidPhoneNumberError{Phone: phone}
	}
	return nil
}
