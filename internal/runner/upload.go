package runner

import (
	"errors"
	"fmt"
	"mime/multipart"

	"keywordmatrix/internal/validation"
)

// MaxUploadFiles caps the number of spreadsheets in one upload.
const MaxUploadFiles = 20

var ErrTooManyFiles = fmt.Errorf("at most %d files can be uploaded at once", MaxUploadFiles)

// UploadError rejects one uploaded file by name.
type UploadError struct {
	Name    string
	Message string
}

func (e *UploadError) Error() string {
	return e.Name + ": " + e.Message
}

// OpenUploads validates and opens uploaded spreadsheets. The returned close
// function releases every opened file and is never nil.
func OpenUploads(headers []*multipart.FileHeader) ([]File, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if len(headers) == 0 {
		return nil, closeAll, ErrNoInput
	}
	if len(headers) > MaxUploadFiles {
		return nil, closeAll, ErrTooManyFiles
	}

	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		if ok, msg := validation.ValidateUploadName(fh.Filename); !ok {
			closeAll()
			return nil, func() {}, &UploadError{Name: fh.Filename, Message: msg}
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, errors.Join(&UploadError{Name: fh.Filename, Message: "cannot open file"}, err)
		}
		opened = append(opened, f)
		files = append(files, File{Name: fh.Filename, Body: f})
	}
	return files, closeAll, nil
}
