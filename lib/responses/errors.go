package responses

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/hisab-app/hisab-server/lib/snapshot"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var AccountNotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "account not found",
	HttpStatusCode: 404,
}

var EntryNotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "entry not found",
	HttpStatusCode: 404,
}

var DuplicateAccountError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "an account with this name or code already exists",
	HttpStatusCode: 409,
}

var BadSnapshotError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "snapshot artifact is malformed",
	HttpStatusCode: 400,
}

var StoreNotEmptyError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "the database is not empty, pass force=true to restore anyway",
	HttpStatusCode: 409,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)

	if resp, ok := mapDomainError(err); ok {
		c.JSON(resp.HttpStatusCode, resp)
		return
	}

	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

func mapDomainError(err error) (ErrorResponse, bool) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return AccountNotFoundError, true
	case errors.Is(err, service.ErrEntryNotFound):
		return EntryNotFoundError, true
	case errors.Is(err, service.ErrDuplicateAccountName),
		errors.Is(err, service.ErrDuplicateAccountCode):
		return DuplicateAccountError, true
	case errors.Is(err, service.ErrMissingAccountFields),
		errors.Is(err, service.ErrInvalidEntryType),
		errors.Is(err, service.ErrNegativeAmount):
		return BadArgumentsError, true
	case errors.Is(err, snapshot.ErrBadFormat):
		return BadSnapshotError, true
	}
	return ErrorResponse{}, false
}
