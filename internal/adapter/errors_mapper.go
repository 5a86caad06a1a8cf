package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/rest"
)

// mapMailResponse turns a non-2xx provider response into a sentinel error.
// The SendGrid client only returns an error for transport failures, so the
// status code must be checked explicitly.
func mapMailResponse(resp *rest.Response) error {
	if resp == nil {
		return ErrMailUnavailable
	}
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrMailUnauthorized, body)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrMailRateLimited, body)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrMailUnavailable, body)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrMailBadRequest, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("mail http %d: %s", resp.StatusCode, body)
	}
}
