package engine

import "github.com/planforge-ai/sdk/types"

// Credits holds attribution and licensing metadata for an engine
// implementation. Frameworks display this when an engine is selected.
type Credits struct {
	// Name is the engine's display name.
	Name string `json:"name"`

	// Authors lists the implementation's authors.
	Authors []string `json:"authors,omitempty"`

	// Contact is an email or similar contact point.
	Contact string `json:"contact,omitempty"`

	// Website points to the implementation's home page.
	Website string `json:"website,omitempty"`

	// License names the implementation's license.
	License string `json:"license,omitempty"`

	// ShortDescription is a one-line summary of the engine.
	ShortDescription string `json:"short_description,omitempty"`
}

// Descriptor describes an engine's identity and capabilities.
// It provides the engine's metadata without requiring access to its
// implementation.
type Descriptor struct {
	// Name is the engine's fixed identifier token.
	Name string `json:"name"`

	// SupportedKind is the set of modeling features the engine can handle.
	SupportedKind types.ProblemKind `json:"supported_kind"`

	// Credits is the engine's attribution metadata, if declared.
	Credits *Credits `json:"credits,omitempty"`
}

// ToDescriptor extracts a Descriptor from an Engine.
func ToDescriptor(e Engine) Descriptor {
	return Descriptor{
		Name:          e.Name(),
		SupportedKind: e.SupportedKind(),
		Credits:       e.Credits(),
	}
}
