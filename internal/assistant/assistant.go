// Package assistant is an explicit stub: it keyword-matches prompts to
// canned replies and never calls a real model. The replies claim component
// mutations that do not happen; this service never touches the store.
// Replacing it with a real integration is an open product decision, and
// until then the mismatch is part of the documented contract.
package assistant

import (
	"fmt"
	"strings"
)

type rule struct {
	keyword  string
	response string
}

// rules are checked in order; the first substring match wins.
var rules = []rule{
	{"header", "I've added a header component to your project. You can customize the text and style in the properties panel."},
	{"hero", "I've created a hero section for your website. You can adjust the title, subtitle, and button text in the properties panel."},
	{"form", "I've added a contact form to your project. You can configure the form fields and submission behavior in the properties panel."},
	{"button", "I've created a button component. You can customize the text, color, and action in the properties panel."},
}

// Respond returns the canned reply for the prompt. It never fails.
func Respond(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, r := range rules {
		if strings.Contains(lower, r.keyword) {
			return r.response
		}
	}
	return fmt.Sprintf("I've processed your request: '%s'. In a real implementation, I would generate components or fix issues based on your prompt.", prompt)
}
