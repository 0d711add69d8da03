package topics

// Renderer turns a topic body into what the topics command prints.
// ext is the topic file extension, dot included.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics exactly as they are stored. It is used when no
// renderer is configured.
type PlainRenderer struct{}

// Render returns content untouched
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
