package portal

// Static configuration data. Rooms, time slots, events, and the hub news feed
// are not user-editable and are not persisted.

var roomCatalog = []Room{
	{ID: "1", Name: "Library Room 101 (Quiet)"},
	{ID: "2", Name: "Library Room 102 (Group)"},
	{ID: "3", Name: "Tech Lab A (Computers)"},
	{ID: "4", Name: "Creative Studio B"},
}

var slotCatalog = []string{
	"09:00 - 10:00",
	"10:00 - 11:00",
	"11:00 - 12:00",
	"13:00 - 14:00",
}

var eventCatalog = []Event{
	{ID: "1", Name: "Guest Lecture: AI in 2025", Category: "Academic", Date: "Nov 12", Description: "Dr. Smith on the future of AI."},
	{ID: "2", Name: "End of Year Tech Ball", Category: "Social", Date: "Dec 15", Description: "Black tie event for CS students."},
	{ID: "3", Name: "Career Fair", Category: "Career", Date: "Oct 20", Description: "Meet Google, Amazon, and local startups."},
	{ID: "4", Name: "Hackathon v4.0", Category: "Competition", Date: "Nov 05", Description: "24h coding challenge with prizes."},
	{ID: "5", Name: "Yoga on the Lawn", Category: "Wellness", Date: "Sept 10", Description: "Relax before finals week."},
}

var newsCatalog = []NewsItem{
	{Title: "Library Hours Extended", Age: "2 hours ago", Tag: "Campus"},
	{Title: "Cafeteria Menu Update", Age: "5 hours ago", Tag: "Dining"},
	{Title: "New Parking Rules in Lot B", Age: "Yesterday", Tag: "Alert"},
	{Title: "Student Council Results", Age: "2 days ago", Tag: "News"},
}

// Rooms returns the bookable room catalog.
func Rooms() []Room {
	out := make([]Room, len(roomCatalog))
	copy(out, roomCatalog)
	return out
}

// Slots returns the bookable time slots.
func Slots() []string {
	out := make([]string, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// Events returns the campus event catalog.
func Events() []Event {
	out := make([]Event, len(eventCatalog))
	copy(out, eventCatalog)
	return out
}

// News returns the static hub news feed.
func News() []NewsItem {
	out := make([]NewsItem, len(newsCatalog))
	copy(out, newsCatalog)
	return out
}

func roomByID(id string) (Room, bool) {
	for _, room := range roomCatalog {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

func eventByID(id string) (Event, bool) {
	for _, event := range eventCatalog {
		if event.ID == id {
			return event, true
		}
	}
	return Event{}, false
}

func validSlot(slot string) bool {
	for _, s := range slotCatalog {
		if s == slot {
			return true
		}
	}
	return false
}
