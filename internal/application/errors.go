package application

import "errors"

// Client-side guard failures. None of them reaches the API.
var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrConfirmMismatch  = errors.New("Confirmation text does not match")
	ErrSelfDelete       = errors.New("You cannot delete your own account")
	ErrMissingID        = errors.New("Discount id is required")
	ErrShareDisabled    = errors.New("Sharing by email is not available")
	ErrUploadDisabled   = errors.New("Image upload is not available")
	ErrUnsupportedImage = errors.New("Only image files can be uploaded")
)

// ErrorMessage turns a failure into banner text. API errors already carry the
// server's message or the transport error text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsGuardError reports whether err is a client-side guard failure.
func IsGuardError(err error) bool {
	for _, g := range []error{ErrPasswordMismatch, ErrConfirmMismatch, ErrSelfDelete, ErrMissingID} {
		if errors.Is(err, g) {
			return true
		}
	}
	return false
}
