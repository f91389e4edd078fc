// Package view maps a requested view name to a renderable state, redirecting
// unauthenticated users to the feed with a sign-in prompt for protected views.
package view

import "fmt"

// Name identifies an application view.
type Name string

const (
	Feed          Name = "feed"
	CreateRequest Name = "create-request"
	Profile       Name = "profile"
	Map           Name = "map"
	MyRequests    Name = "my-requests"
)

// Initial is the state the application starts in.
const Initial = Feed

// ErrUnknownView is returned for view names outside the state machine.
type ErrUnknownView struct{ Name string }

func (e ErrUnknownView) Error() string { return fmt.Sprintf("unknown view %q", e.Name) }

// Resolution is the outcome of a navigation intent.
type Resolution struct {
	View          Name `json:"view"`
	SignInPrompt  bool `json:"sign_in_prompt"`
	Authenticated bool `json:"authenticated"`
}

// Resolve applies the access gate: feed and map are public, every other view
// requires a session. A gated navigation lands back on the feed with the
// sign-in prompt raised; it is never an error.
func Resolve(name Name, authenticated bool) (Resolution, error) {
	switch name {
	case Feed, CreateRequest, Profile, Map, MyRequests:
	default:
		return Resolution{}, ErrUnknownView{Name: string(name)}
	}

	if !authenticated && name != Feed && name != Map {
		return Resolution{View: Feed, SignInPrompt: true}, nil
	}

	return Resolution{View: name, Authenticated: authenticated}, nil
}
