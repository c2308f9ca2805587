// Package http provides HTTP handlers and middleware for the portal API.
//
// The router exposes the following endpoints:
//   - POST /register: creates an account. Body: {"username","password"}.
//     A fresh account is never logged in; the response notice prompts a login.
//   - POST /sessions: authenticates and issues a session token, surfaced via
//     the response body, the `X-Session-Token` header, and a `session_token`
//     cookie. DELETE /sessions/current ends the session and clears the cookie.
//   - GET /rooms: the static room catalog plus bookable slots. GET/POST
//     /bookings: the session user's booking history and new bookings; a taken
//     (room, slot) pair answers 409.
//   - GET /events?q=: event listings filtered by name or category, each with
//     the caller's registration state. POST /events/{id}/reservations
//     registers; GET /reservations lists the session user's reservations.
//   - GET /gpa, POST /gpa/courses, DELETE /gpa/courses/{id}, POST /gpa/reset:
//     the GPA calculator. GET/POST /todos, POST /todos/{id}/toggle,
//     DELETE /todos/{id}: the to-do list.
//   - GET /account: booking and reservation history, plus panel stats for the
//     admin user. GET /admin/stats and POST /admin/reset are admin only; the
//     reset wipes the store back to first-run state.
//   - GET /theme, PUT /theme: the persisted light/dark preference.
//   - GET /pages/current, POST /pages/{id}: the page state machine. Showing a
//     page runs its refresh hook and returns the payload it produced.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
