package dto

// ExportRequest body for POST /api/schemes/export.
type ExportRequest struct {
	Scheme  SchemeRequest `json:"scheme"`
	Formats []string      `json:"formats"`
}

// ExportResultDTO outcome of one format. Data is base64 and only present on success.
type ExportResultDTO struct {
	Format      string `json:"format"`
	Success     bool   `json:"success"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Data        string `json:"data,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ExportResponse per-format results in request order.
type ExportResponse struct {
	Results   []ExportResultDTO `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}
