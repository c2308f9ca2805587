package portal

import "time"

// Principal represents the authenticated user invoking a service method. A
// zero Principal means no active session.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// Authenticated reports whether the principal carries an active identity.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// User is a registered account. CredentialDigest is never exposed outside the
// auth service.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	CredentialDigest string    `json:"credential_digest"`
	CreatedAt        time.Time `json:"created_at"`
}

// Session is the persisted projection of a logged-in user. Absence of a
// session for a token means "logged out".
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Booking reserves a room for a time slot. RoomName is a denormalized
// snapshot taken at creation so history survives later catalog changes.
type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RoomID    string    `json:"room_id"`
	RoomName  string    `json:"room_name"`
	Slot      string    `json:"slot"`
	CreatedAt time.Time `json:"created_at"`
}

// Reservation registers a user for a campus event. EventName is a
// denormalized snapshot, like Booking.RoomName.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	EventName string    `json:"event_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Course is one row of the GPA calculator.
type Course struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Grade   float64 `json:"grade"`
}

// Task is one row of the to-do list.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Room is a bookable room from the static catalog.
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is a campus event from the static catalog.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// NewsItem is a static hub feed entry.
type NewsItem struct {
	Title string `json:"title"`
	Age   string `json:"age"`
	Tag   string `json:"tag"`
}

// RegistrationState describes the action available for an event listing,
// evaluated fresh on every render.
type RegistrationState string

const (
	// RegistrationLoginRequired marks listings shown to anonymous visitors.
	RegistrationLoginRequired RegistrationState = "login_required"
	// RegistrationRegistered marks events the user already holds a reservation for.
	RegistrationRegistered RegistrationState = "registered"
	// RegistrationOpen marks events the user may register for.
	RegistrationOpen RegistrationState = "open"
)

// EventListing pairs an event with the registration state computed for the
// requesting principal.
type EventListing struct {
	Event Event             `json:"event"`
	State RegistrationState `json:"state"`
}

// GPATier is the presentational band for a computed GPA.
type GPATier string

const (
	GPATierHigh GPATier = "high" // >= 3.0
	GPATierMid  GPATier = "mid"  // >= 2.0
	GPATierLow  GPATier = "low"
)

// GPASummary is the computed state of the GPA calculator.
type GPASummary struct {
	Courses      []Course `json:"courses"`
	GPA          string   `json:"gpa"`
	TotalCredits float64  `json:"total_credits"`
	Tier         GPATier  `json:"tier"`
}

// AdminStats is the data behind the administrative panel.
type AdminStats struct {
	UserCount        int `json:"user_count"`
	BookingCount     int `json:"booking_count"`
	ReservationCount int `json:"reservation_count"`
}

// RegisterParams captures the data required to create an account.
type RegisterParams struct {
	Username string
	Password string
}

// LoginParams captures the data required to authenticate.
type LoginParams struct {
	Username string
	Password string
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	RoomID string
	Slot   string
}

// CourseInput captures caller provided GPA course fields.
type CourseInput struct {
	Name    string
	Credits float64
	Grade   float64
}
