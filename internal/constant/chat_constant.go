package constant

const (
	ChatMessageRoleUser = "user"
	ChatMessageRoleBot  = "bot"

	ChatSessionStatusActive = "Active"
	ChatSessionStatusClosed = "Closed"

	// HistoryPageSize bounds the user-facing session history listing.
	HistoryPageSize = 10

	FeedbackRatingMin = 1
	FeedbackRatingMax = 5
)

// WelcomeMessageFormat seeds every freshly started (or cleared) session.
// The single %s is the chatbot display name.
const WelcomeMessageFormat = "Hello! I'm %s. How can I help you today?"
