// Package crawler discovers the pages a suite follows from a seed page.
package crawler

import (
	"net/url"
)

// Queue is a FIFO of URLs that admits each normalized URL once.
type Queue struct {
	items []Item
	seen  map[string]bool
}

// Item is a queued URL and its link distance from the seed.
type Item struct {
	URL   string
	Depth int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]bool)}
}

// Add queues rawURL unless it was seen before. It reports whether the URL
// was queued.
func (q *Queue) Add(rawURL string, depth int) bool {
	key := Normalize(rawURL)
	if key == "" || q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, Item{URL: rawURL, Depth: depth})
	return true
}

// MarkSeen records rawURL without queueing it.
func (q *Queue) MarkSeen(rawURL string) {
	if key := Normalize(rawURL); key != "" {
		q.seen[key] = true
	}
}

// Pop removes the oldest item.
func (q *Queue) Pop() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Normalize drops the fragment and a trailing slash so equivalent links
// compare equal. An empty path on a host URL becomes "/". It returns "" for
// unparseable input.
func Normalize(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	if parsed.Path == "" && parsed.Host != "" {
		parsed.Path = "/"
	}
	if len(parsed.Path) > 1 && parsed.Path[len(parsed.Path)-1] == '/' {
		parsed.Path = parsed.Path[:len(parsed.Path)-1]
	}
	return parsed.String()
}

// SameHost reports whether two URLs share a host.
func SameHost(a, b string) bool {
	pa, err := url.Parse(a)
	if err != nil {
		return false
	}
	pb, err := url.Parse(b)
	if err != nil {
		return false
	}
	return pa.Host == pb.Host
}
