// Package config implements the configuration of the rimport command.
package config

// Global constants for the application.
const (
	Application = "rimport"
	Description = "Recursively resolve every unit below a root container in a deterministic order"
	WebSite     = "https://github.com/FilipMalczak/recursive-import"
	UI          = `
       _                            _
 _ __ (_)_ __ ___  _ __   ___  _ __| |_
| '__|| | '_ ' _ \| '_ \ / _ \| '__| __|
| |   | | | | | | | |_) | (_) | |  | |_
|_|   |_|_| |_| |_| .__/ \___/|_|   \__|
                  |_|
`
)
