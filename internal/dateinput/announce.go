package dateinput

// Announcer receives assistive-technology announcements. Each call replaces
// the previous text; nothing is queued.
type Announcer interface {
	Announce(text string)
}

// LiveRegion is an Announcer that keeps the latest text for rendering.
type LiveRegion struct {
	text string
}

// Announce implements Announcer.
func (l *LiveRegion) Announce(text string) { l.text = text }

// Text returns the current announcement.
func (l *LiveRegion) Text() string { return l.text }
