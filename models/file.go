package models

// File is a downloadable document: an attachment, a certificate or a report.
type File struct {
	FileName    string
	ContentType string
	Body        []byte
}
