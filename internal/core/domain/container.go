package domain

// UnknownImage is reported when a container's image carries no repo tag.
const UnknownImage = "unknown"

// Container is a live snapshot of a container as reported by the runtime.
type Container struct {
	Name   string `json:"name"`
	Status string `json:"status"` // running, exited, created, ...
	ID     string `json:"id"`     // short ID
	Image  string `json:"image"`  // first repo tag or UnknownImage
}
