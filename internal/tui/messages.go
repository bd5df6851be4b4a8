package tui

import "github.com/matheuskafuri/capalinks/internal/links"

type linksLoadedMsg struct {
	env *links.Envelope
}

type loadErrMsg struct {
	err error
}
