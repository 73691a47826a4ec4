package components

import "github.com/yohamta/donburi"

// NoticeData is a transient line shown at the top of the screen, such as a
// peer joining.
type NoticeData struct {
	Text      string
	Remaining float64 // Seconds left on screen
	Posted    int     // Order of posting, oldest first
}

var Notice = donburi.NewComponentType[NoticeData]()
