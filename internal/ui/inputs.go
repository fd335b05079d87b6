package ui

import "github.com/charmbracelet/bubbles/textinput"

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "search products"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return ti
}

func newCommentInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "write a comment"
	ti.Prompt = "> "
	ti.CharLimit = 280
	return ti
}

// newAuthInputs builds the login form, or the signup form when
// signup is true (username first, then email and password).
func newAuthInputs(signup bool) []textinput.Model {
	var labels []string
	if signup {
		labels = []string{"username", "email", "password"}
	} else {
		labels = []string{"email", "password"}
	}

	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = "  "
		ti.CharLimit = 128
		if label == "password" {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		inputs[i] = ti
	}
	inputs[0].Focus()
	return inputs
}

// newSellInputs builds the listing form: name, price, category,
// description, image URL.
func newSellInputs() []textinput.Model {
	labels := []string{"name", "price", "category", "description", "image url"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = "  "
		ti.CharLimit = 256
		inputs[i] = ti
	}
	return inputs
}
