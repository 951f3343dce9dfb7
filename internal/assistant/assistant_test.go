package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	t.Run("matches known keywords", func(t *testing.T) {
		assert.Contains(t, Respond("add a header please"), "header component")
		assert.Contains(t, Respond("I want a hero section"), "hero section")
		assert.Contains(t, Respond("create a contact form"), "contact form")
		assert.Contains(t, Respond("give me a button"), "button component")
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		assert.Equal(t, Respond("add a HEADER"), Respond("add a header"))
	})

	t.Run("earlier keywords win", func(t *testing.T) {
		// "header" outranks "button" when both appear in the prompt
		assert.Contains(t, Respond("a header with a button"), "header component")
	})

	t.Run("unmatched prompts echo in the fallback", func(t *testing.T) {
		got := Respond("make it pop")
		assert.Contains(t, got, "I've processed your request: 'make it pop'")
	})

	t.Run("empty prompt still gets a reply", func(t *testing.T) {
		assert.NotEmpty(t, Respond(""))
	})
}
