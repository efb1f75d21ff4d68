package model

type Role string

const (
	RoleUser      = Role("user")
	RoleAssistant = Role("assistant")
)

type Language string

const (
	LanguageEnglish = Language("en")
	LanguageSinhala = Language("si")
)

// Message is one chat bubble as the widget keeps it. Timestamp is a display
// string, not a parseable time.
type Message struct {
	Role              Role     `json:"role"`
	Content           string   `json:"content"`
	Timestamp         string   `json:"timestamp,omitempty"`
	Language          Language `json:"language,omitempty"`
	ShowContactButton bool     `json:"showContactButton,omitempty"`
}
