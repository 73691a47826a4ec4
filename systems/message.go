package systems

import (
	"sort"

	"github.com/automoto/avatarsync/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var noticeQuery = donburi.NewQuery(filter.Contains(components.Notice))

// PostNotice shows text for duration seconds. Beyond limit notices the
// oldest are dropped.
func PostNotice(w donburi.World, text string, duration float64, limit int) {
	posted := 1
	if live := sortedNotices(w); len(live) > 0 {
		posted = components.Notice.Get(live[len(live)-1]).Posted + 1
	}

	entry := w.Entry(w.Create(components.Notice))
	components.Notice.SetValue(entry, components.NoticeData{
		Text:      text,
		Remaining: duration,
		Posted:    posted,
	})

	entries := sortedNotices(w)
	for len(entries) > limit {
		entries[0].Remove()
		entries = entries[1:]
	}
}

// UpdateNotices counts notices down and removes the expired ones.
func UpdateNotices(w donburi.World, dt float64) {
	var expired []*donburi.Entry
	noticeQuery.Each(w, func(entry *donburi.Entry) {
		n := components.Notice.Get(entry)
		n.Remaining -= dt
		if n.Remaining <= 0 {
			expired = append(expired, entry)
		}
	})
	for _, entry := range expired {
		entry.Remove()
	}
}

// Notices returns the text of the live notices, oldest first.
func Notices(w donburi.World) []string {
	entries := sortedNotices(w)
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, components.Notice.Get(entry).Text)
	}
	return out
}

func sortedNotices(w donburi.World) []*donburi.Entry {
	var entries []*donburi.Entry
	noticeQuery.Each(w, func(entry *donburi.Entry) {
		entries = append(entries, entry)
	})
	sort.Slice(entries, func(i, j int) bool {
		return components.Notice.Get(entries[i]).Posted < components.Notice.Get(entries[j]).Posted
	})
	return entries
}
