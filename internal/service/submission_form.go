package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/unclebandit/totallook-bridge/internal/model"
)

var (
	keyFirstName = fmt.Sprintf("submission[%d][first]", model.FieldName)
	keyLastName  = fmt.Sprintf("submission[%d][last]", model.FieldName)
	keyPhone     = fmt.Sprintf("submission[%d]", model.FieldPhone)
	keyEmail     = fmt.Sprintf("submission[%d]", model.FieldEmail)
)

// SplitName treats the last word as the surname and everything before it,
// joined by single spaces, as the first name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// CreateSubmissionForm leaves out phone and email unless they are non-empty.
func CreateSubmissionForm(c model.Client) url.Values {
	form := nameForm(c.Name)
	if c.Phone != nil && *c.Phone != "" {
		form.Set(keyPhone, *c.Phone)
	}
	if c.Email != nil && *c.Email != "" {
		form.Set(keyEmail, *c.Email)
	}
	return form
}

// UpdateSubmissionForm sends phone and email whenever the caller supplied
// them, so an explicit "" clears the field upstream.
func UpdateSubmissionForm(c model.Client) url.Values {
	form := nameForm(c.Name)
	if c.Phone != nil {
		form.Set(keyPhone, *c.Phone)
	}
	if c.Email != nil {
		form.Set(keyEmail, *c.Email)
	}
	return form
}

func nameForm(name string) url.Values {
	first, last := SplitName(name)
	form := url.Values{}
	form.Set(keyFirstName, first)
	form.Set(keyLastName, last)
	return form
}
