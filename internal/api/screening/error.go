package screening

import (
	"DermAssist/pkg/response"
	"net/http"
)

var (
	ErrUnsupportedMediaType = response.NewError(http.StatusBadRequest, "Invalid file type. Only JPEG and PNG are accepted.")
	ErrInvalidImage         = response.NewError(http.StatusBadRequest, "Could not decode image. Please upload a valid JPEG or PNG.")
	ErrModelUnavailable     = response.NewError(http.StatusServiceUnavailable, "Model not loaded. Please try again later.")
	ErrInferenceFailed      = response.NewError(http.StatusInternalServerError, "Inference failed.")
)

func IsSupportedMime(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png"
}
