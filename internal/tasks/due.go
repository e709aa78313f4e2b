package tasks

// DefaultDueLang is the language the API assumes for a due string sent
// without due_lang. It is never added to a payload.
const DefaultDueLang = "en"

// Due is the due date of a new task. The API accepts exactly one of three
// forms, so Due is closed to the variants in this package: DueString,
// DueDate and DueDatetime.
type Due interface {
	flatten(w *wireTask)
}

// DueString is a natural language due date such as "next monday", with an
// optional language for parsing it.
type DueString struct {
	String string
	Lang   *string
}

// DueDate is a calendar date in YYYY-MM-DD form, in the user's timezone.
type DueDate struct {
	Date string
}

// DueDatetime is an RFC3339 timestamp in UTC.
type DueDatetime struct {
	Datetime string
}

// DueFromString returns a natural language due date. lang may be nil.
func DueFromString(text string, lang *string) Due {
	return DueString{String: text, Lang: lang}
}

// DueFromDate returns a date-only due date.
func DueFromDate(date string) Due {
	return DueDate{Date: date}
}

// DueFromDatetime returns a due date with a time.
func DueFromDatetime(datetime string) Due {
	return DueDatetime{Datetime: datetime}
}

func (d DueString) flatten(w *wireTask) {
	s := d.String
	w.DueString = &s
	w.DueLang = d.Lang
}

func (d DueDate) flatten(w *wireTask) {
	s := d.Date
	w.DueDate = &s
}

func (d DueDatetime) flatten(w *wireTask) {
	s := d.Datetime
	w.DueDatetime = &s
}
