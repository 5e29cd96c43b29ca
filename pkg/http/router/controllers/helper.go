package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *scenarioAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (api *scenarioAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = anyToString(message)

	if err := api.writeJSON(w, status, envelope{"error": resp.Error}, nil); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func anyToString(message interface{}) string {
	switch m := message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	default:
		return util.MessageInternalServerError
	}
}

func (api *scenarioAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err)
}

func (api *scenarioAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err)
}

func (api *scenarioAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err),
		zap.String("method", r.Method), zap.String("url", r.URL.String()))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// getStatusCode maps registered error codes to HTTP responses. Unknown origins and
// missing segments are 404s, validation failures 400s, everything else a 500.
func (api *scenarioAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	code := util.ErrorCode(err)
	switch {
	case errors.Is(code, routing.ErrUnknownOrigin), errors.Is(code, util.ErrNotFound):
		api.NotFoundResponse(w, r, err)
	case errors.Is(code, routing.ErrMalformedChain), errors.Is(code, util.ErrBadParamInput):
		api.BadRequestResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			errs = append(errs, errors.New(e.Translate(trans)))
		}
	}
	return errs
}
