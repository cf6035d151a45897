package respond

// Entry is one response table cell: either fixed text or text derived from
// the raw message
type Entry struct {
	text   string
	render func(message string) string
}

// Static returns an entry that always answers text
func Static(text string) Entry {
	return Entry{text: text}
}

// Templated returns an entry whose answer is a pure function of the message
func Templated(fn func(message string) string) Entry {
	return Entry{render: fn}
}

// IsTemplated reports whether the entry depends on the message
func (e Entry) IsTemplated() bool {
	return e.render != nil
}

// Render resolves the entry for a message
func (e Entry) Render(message string) string {
	if e.render != nil {
		return e.render(message)
	}
	return e.text
}

// defined reports whether the entry was set at all
func (e Entry) defined() bool {
	return e.render != nil || e.text != ""
}
