package component

// ReloadRequest is a marker component used to signal the game loop to reload
// the current level. Systems create a short-lived entity with this component.
type ReloadRequest struct{}

var ReloadRequestComponent = NewComponent[ReloadRequest]()

// PauseRequest asks the game loop to toggle the pause menu.
type PauseRequest struct{}

var PauseRequestComponent = NewComponent[PauseRequest]()
