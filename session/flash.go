package session

// Flash levels.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
)

const flashKey = "flashes"

// Flash is a one-time status message: added during a request, popped on
// the next render, gone after that.
type Flash struct {
	Level string
	Text  string
}

// AddFlash appends a flash to the session.
func AddFlash(store Store, level, text string) {
	flashes, _ := store.Get(flashKey)
	list, _ := flashes.([]Flash)
	store.Set(flashKey, append(list, Flash{Level: level, Text: text}))
}

// PopFlashes removes and returns all queued flashes.
func PopFlashes(store Store) []Flash {
	flashes, ok := store.Pop(flashKey)
	if !ok {
		return nil
	}
	list, _ := flashes.([]Flash)
	return list
}
