package entity

// Notification is a composed, backend-agnostic push message summarizing one
// or many classified releases. URL and Icon are optional; when several
// releases qualify they are taken from the first one in resolution order,
// since most push backends accept a single link and icon per message.
type Notification struct {
	Title string
	Body  string
	URL   string
	Icon  string
}
