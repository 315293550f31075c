package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
)

// ParseIDParam extracts and validates the "id" URL parameter.
func ParseIDParam(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	if id > uint64(^uint(0)) {
		return 0, fmt.Errorf("invalid id: %s", idStr)
	}
	return uint(id), nil
}

// ShowToast sets the HX-Trigger response header with a showToast event so the
// page shell can display a transient notification.
func ShowToast(c *gin.Context, message, toastType string) {
	trigger, _ := json.Marshal(map[string]any{
		"showToast": map[string]string{
			"message": message,
			"type":    toastType,
		},
	})
	c.Header("HX-Trigger", string(trigger))
}

// HXRedirect tells htmx to perform a client-side redirect after a successful
// form submission.
func HXRedirect(c *gin.Context, url string) {
	c.Header("HX-Redirect", url)
	c.Status(http.StatusOK)
}

// HXToastError reports a failed row operation without swapping any content:
// the row stays intact and only a toast fires.
func HXToastError(c *gin.Context, message string) {
	c.Header("HX-Reswap", "none")
	ShowToast(c, message, "error")
	c.Status(http.StatusOK)
}

// SafeErrorMessage extracts a user-safe error message from an AppError.
// Only messages from user-facing error codes (NotFound, AlreadyExists,
// Validation) are returned. Internal or unknown error codes always return the
// fallback to prevent leaking technical details to end users.
func SafeErrorMessage(err error, fallback string) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		switch appErr.Code {
		case domain.CodeNotFound, domain.CodeAlreadyExists, domain.CodeValidation:
			return appErr.Message
		}
	}
	return fallback
}
