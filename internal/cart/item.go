package cart

import "time"

// Item is one cart line as the session keeps it. Selected never leaves the
// storefront; the backend only knows book and quantity.
type Item struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
	Selected bool  `json:"selected"`
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a short-lived, non-blocking message for the cart screen.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	BookIDs   []int64     `json:"bookIds,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// State is everything the cart owns for one session.
type State struct {
	Items   []Item   `json:"items"`
	Loaded  bool     `json:"loaded"`
	Notices []Notice `json:"notices,omitempty"`
}

func (s *State) index(bookID int64) int {
	for i, it := range s.Items {
		if it.BookID == bookID {
			return i
		}
	}
	return -1
}

func (s *State) Find(bookID int64) (Item, bool) {
	if i := s.index(bookID); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

func (s *State) AddNotice(n Notice) {
	s.Notices = append(s.Notices, n)
}

// ActiveNotices drops expired notices and returns the rest.
func (s *State) ActiveNotices(now time.Time) []Notice {
	kept := s.Notices[:0]
	for _, n := range s.Notices {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	s.Notices = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}

// Deselect clears the selected flag of the given books and reports whether
// anything changed.
func (s *State) Deselect(bookIDs ...int64) bool {
	changed := false
	for _, id := range bookIDs {
		if i := s.index(id); i >= 0 && s.Items[i].Selected {
			s.Items[i].Selected = false
			changed = true
		}
	}
	return changed
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{Loaded: s.Loaded}
	out.Items = append([]Item(nil), s.Items...)
	for _, n := range s.Notices {
		n.BookIDs = append([]int64(nil), n.BookIDs...)
		out.Notices = append(out.Notices, n)
	}
	return out
}
