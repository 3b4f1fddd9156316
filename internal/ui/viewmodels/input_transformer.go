package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"libcatalog/internal/domain"
)

// InputMode represents the different input modes
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeSearch
	InputModeGotoPage
)

// InputTransformer handles input mode transformations
type InputTransformer struct {
	mode      InputMode
	textInput textinput.Model
	category  domain.SearchCategory
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      InputModeNormal,
		textInput: textInput,
		category:  domain.CategoryName,
	}
}

// SetMode sets the current input mode
func (it *InputTransformer) SetMode(mode InputMode) {
	it.mode = mode
}

// Mode returns the current input mode
func (it *InputTransformer) Mode() InputMode {
	return it.mode
}

// SetCategory sets the category named in the search prompt
func (it *InputTransformer) SetCategory(c domain.SearchCategory) {
	it.category = c
}

// GetInputText returns the current text input string for the view
func (it *InputTransformer) GetInputText() string {
	switch it.mode {
	case InputModeNormal:
		return ""
	case InputModeSearch:
		return "Search by " + it.category.Label() + ": " + it.textInput.View()
	case InputModeGotoPage:
		return "Go to page: " + it.textInput.View()
	default:
		return it.textInput.View()
	}
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case InputModeSearch:
		return "search"
	case InputModeGotoPage:
		return "goto-page"
	default:
		return ""
	}
}
