package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrUnsupportedFileType = errors.New("unsupported file type, allowed types: .pdf, .txt, .md")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")

	ErrProcessDocument  = errors.New("failed to process document")
	ErrListDocuments    = errors.New("failed to list documents")
	ErrDeleteDocument   = errors.New("failed to delete document")
	ErrDocumentNotFound = errors.New("document not found")

	ErrChat           = errors.New("failed to generate response")
	ErrGetHistory     = errors.New("failed to retrieve chat history")
	ErrSubmitFeedback = errors.New("failed to submit feedback")
	ErrListFeedback   = errors.New("failed to list feedback")
)
