package leads

// ConfirmationMessage is returned verbatim for every stored lead.
const ConfirmationMessage = "Lead agregado correctamente"

// Lead represents a contact form submission. The intake service does not
// validate it: any shape that decodes is stored as-is.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// Row is one stored lead as an ordered sequence of text cells. Rows read back
// from the store are not mapped to named fields.
type Row []string

// Row lays the lead out positionally as name, email, phone, message. Absent
// optional fields become empty cells.
func (l Lead) Row() Row {
	return Row{l.Name, l.Email, l.Phone, l.Message}
}
