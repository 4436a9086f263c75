package email

// Template names a file under templates/.
type Template string

const (
	TemplateWelcome Template = "welcome"
)
