package request

// ImageImportItem is one screenshot in a batch image import.
type ImageImportItem struct {
	Name     string `json:"name"`
	Image    string `json:"image"` // data URL or bare base64
	MIMEType string `json:"mimeType"`
}

// ImageImportRequest is a batch of screenshots bound for one account.
type ImageImportRequest struct {
	Account string            `json:"account"`
	Images  []ImageImportItem `json:"images"`
}

// ConfirmImportRequest optionally moves the whole preview to another account.
type ConfirmImportRequest struct {
	Account string `json:"account"`
}
