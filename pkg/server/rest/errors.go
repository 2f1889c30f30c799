package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
)

// internal error code di body response
const (
	AppCodeInvalidJSON       = 2000
	AppCodeInvalidParameter  = 2003
	AppCodeUnsupportedExport = 2006
	AppCodeRouteNotFound     = 2009
	AppCodeUnknown           = 2099
)

const engineName = "navigatorx-hgv"

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Error ErrBody `json:"error"`
	Info  ErrInfo `json:"info"`
}

type ErrBody struct {
	Code       int64    `json:"code"`
	Message    string   `json:"message"`
	Validation []string `json:"validation,omitempty"`
}

type ErrInfo struct {
	Engine    string `json:"engine"`
	Timestamp int64  `json:"timestamp"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, status int, code int64, msg string) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		Error:          ErrBody{Code: code, Message: msg},
		Info:           ErrInfo{Engine: engineName, Timestamp: time.Now().UnixMilli()},
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return newErrResponse(err, http.StatusBadRequest, AppCodeInvalidJSON, err.Error())
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	resp := newErrResponse(err, http.StatusBadRequest, AppCodeInvalidParameter, "invalid parameter value")
	resp.Error.Validation = vv
	return resp
}

func ErrUnsupportedExport(format string) render.Renderer {
	return newErrResponse(fmt.Errorf("unsupported format %q", format), http.StatusNotAcceptable, AppCodeUnsupportedExport,
		fmt.Sprintf("export format %q is not supported", format))
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return newErrResponse(err, http.StatusInternalServerError, AppCodeUnknown, "internal server error")
}

// ErrFromService mapping server.ErrorCode ke http status & app code
func ErrFromService(err error) render.Renderer {
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return ErrInternalServerErrorRend(err)
	}

	switch ierr.Code() {
	case server.ErrBadParamInput:
		return newErrResponse(err, http.StatusBadRequest, AppCodeInvalidParameter, ierr.Message())
	case server.ErrNotFound:
		return newErrResponse(err, http.StatusNotFound, AppCodeRouteNotFound, ierr.Message())
	case server.ErrConflict:
		return newErrResponse(err, http.StatusConflict, AppCodeUnknown, ierr.Message())
	default:
		return ErrInternalServerErrorRend(err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := errors.New(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
