package ingestion

import "github.com/jhoicas/elimu-hub/internal/application/ports"

// Storage sub-directories per upload kind.
const (
	DirDocuments = "documents"
	DirTemplates = "templates"
	DirLibrary   = "library"
)

var (
	rulePDF  = ports.FileRule{Ext: ".pdf", MIMEs: []string{"application/pdf"}, Kind: "pdf"}
	ruleDOCX = ports.FileRule{
		Ext: ".docx",
		MIMEs: []string{
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/zip",
		},
		Kind: "docx",
	}
	ruleTXT = ports.FileRule{Ext: ".txt", MIMEs: []string{"text/plain"}, Kind: "txt"}
)

// DocumentAllowList curriculum documents: PDF, DOCX and plain text.
var DocumentAllowList = ports.AllowList{rulePDF, ruleDOCX, ruleTXT}

// TemplateAllowList sample documents that guide generation.
var TemplateAllowList = ports.AllowList{rulePDF, ruleDOCX, ruleTXT}

// LibraryAllowList shared resources: PDF, video, audio and images.
var LibraryAllowList = ports.AllowList{
	rulePDF,
	{Ext: ".mp4", MIMEs: []string{"video/mp4"}, Kind: "video"},
	{Ext: ".webm", MIMEs: []string{"video/webm"}, Kind: "video"},
	{Ext: ".mp3", MIMEs: []string{"audio/mpeg"}, Kind: "audio"},
	{Ext: ".wav", MIMEs: []string{"audio/wav", "audio/x-wav"}, Kind: "audio"},
	{Ext: ".m4a", MIMEs: []string{"audio/x-m4a", "audio/mp4", "video/mp4"}, Kind: "audio"},
	{Ext: ".png", MIMEs: []string{"image/png"}, Kind: "image"},
	{Ext: ".jpg", MIMEs: []string{"image/jpeg"}, Kind: "image"},
	{Ext: ".jpeg", MIMEs: []string{"image/jpeg"}, Kind: "image"},
}
