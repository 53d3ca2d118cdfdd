package form

import (
	"errors"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateStruct runs the rules one by one and joins the violations into a
// single error with sentence-cased messages.
func ValidateStruct(structField interface{}, rules ...*validation.FieldRules) error {
	var msgs []string

	for _, rule := range rules {
		err := validation.ValidateStruct(structField, rule)
		if err != nil {
			msgs = append(msgs, formatErrMsg(err.Error()))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, " "))
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}
