package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-service-kit/httperr"
)

// ErrorFromResponse maps a non-2xx response to the kit's error sentinels,
// so callers branch with errors.Is and handlers can pass the error straight
// to httperr.Respond. 2xx responses map to nil.
//
// The response body is decoded as the kit's JSON error envelope when
// possible and its message is kept in the returned error text; otherwise
// the raw body (or the generic status text) is used. 502, 503 and 504 all
// map to [httperr.ErrUnavailable]; statuses outside the sentinel set yield
// a plain "http <code>" error.
func ErrorFromResponse(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	var env httperr.Envelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil && env.Error != "" {
		body = env.Error
	}

	sentinel := sentinelForStatus(resp.StatusCode())
	if sentinel == nil {
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}

	if body == "" {
		return sentinel
	}

	return fmt.Errorf("%w: %s", sentinel, body)
}

func sentinelForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return httperr.ErrBadRequest
	case http.StatusUnauthorized:
		return httperr.ErrUnauthorized
	case http.StatusForbidden:
		return httperr.ErrForbidden
	case http.StatusNotFound:
		return httperr.ErrNotFound
	case http.StatusConflict:
		return httperr.ErrConflict
	case http.StatusUnprocessableEntity:
		return httperr.ErrUnprocessable
	case http.StatusTooManyRequests:
		return httperr.ErrTooManyRequests
	case http.StatusInternalServerError:
		return httperr.ErrInternal
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return httperr.ErrUnavailable
	default:
		return nil
	}
}
