package ui

// Canonical component names registered by NewDefaultRegistry.
const (
	NameButton    = "button"
	NameTextField = "text-field"
	NameTextArea  = "textarea"
	NameSelect    = "select"
	NameCheckbox  = "checkbox"
	NameRadio     = "radio"
	NameCard      = "card"
	NameImage     = "image"
	NameContainer = "container"
	NameGrid      = "grid"
	NameFlex      = "flex"
	NameSection   = "section"
	NameHeading   = "heading"
	NameText      = "text"
)
