package constants

const (
	// ContextKeyUserID is the session and gin context key holding the authenticated account ID
	ContextKeyUserID = "user_id"

	// ContextKeyResourceID is the gin context key holding the parsed ":id" path parameter
	ContextKeyResourceID = "resource_id"

	// SessionCookieName is the name of the HTTP-only session cookie
	SessionCookieName = "feedback_session"

	// MinPasswordLength is the minimum number of characters in a password
	MinPasswordLength = 8

	// MaxPasswordBytes is the longest password bcrypt accepts
	MaxPasswordBytes = 72

	// MaxEmailLength matches the email column width
	MaxEmailLength = 255

	// Username length bounds
	MinUsernameLength = 3
	MaxUsernameLength = 50

	// MaxNameLength bounds tab and sub-tab names
	MaxNameLength = 100

	// MaxTitleLength bounds feedback titles
	MaxTitleLength = 255

	// MaxCategoryLength bounds feedback categories
	MaxCategoryLength = 100

	// MaxContentLength bounds feedback content; it fits a MySQL TEXT column in utf8mb4
	MaxContentLength = 10000

	// DefaultSubTabName is the name of the sub-tab created with every tab
	DefaultSubTabName = "General"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPriorityTextLength bounds the text sent to the priority advisor
	MaxPriorityTextLength = 4000
)
