package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler maps the error taxonomy onto HTTP statuses. The kind is
// decided at the throw site; nothing here inspects message text.
//
// Validation -> 400, generation failures -> 502 (upstream service error),
// not found -> 404, storage and everything else -> 500.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request", "details": ve.Message})
			return
		}

		var mre *MalformedResponseError
		var ise *InvalidShapeError
		if errors.As(err, &mre) || errors.As(err, &ise) {
			slog.Error("Generation failure", "error", err)
			_ = c.JSON(http.StatusBadGateway, map[string]string{
				"error":   "AI service error",
				"message": "The AI service encountered an error. Please try again.",
			})
			return
		}

		var nfe *NotFoundError
		if errors.As(err, &nfe) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": nfe.Error()})
			return
		}

		var se *StorageError
		if errors.As(err, &se) {
			slog.Error("Storage failure", "op", se.Op, "error", se.Err)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{
				"error":   "Failed to process content",
				"message": se.Error(),
			})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
