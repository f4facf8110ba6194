package dto

// WebsiteSubmission carries the raw form fields of a showcase submission.
// Categories is the operator's comma separated input; the service parses it.
type WebsiteSubmission struct {
	Name              string
	URL               string
	Categories        string
	Twitter           string
	Instagram         string
	BuiltWith         string
	OtherTechnologies string
}

// VideoUpload is an optional demo video attached to a submission. The caller
// is responsible for enforcing content type and size limits before handing
// the payload to the service.
type VideoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}
