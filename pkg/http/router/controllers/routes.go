package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/satria-nugraha/corridorsim/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type scenarioAPI struct {
	scenarioService ScenarioService
	log             *zap.Logger
}

func New(scenarioService ScenarioService, log *zap.Logger) *scenarioAPI {
	return &scenarioAPI{
		scenarioService: scenarioService,
		log:             log,
	}
}

func (api *scenarioAPI) Routes(group *helper.RouteGroup) {
	group.GET("/route", api.route)
	group.GET("/route/nearest", api.nearestRoute)
	group.GET("/scenario", api.scenarioSummary)
}

func (api *scenarioAPI) route(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := routeRequest{Origin: r.URL.Query().Get("origin")}

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, lengthM, polyline, err := api.scenarioService.RouteFor(request.Origin)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewRouteResponse(request.Origin, route, lengthM, polyline)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *scenarioAPI) nearestRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestRouteRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	origin, route, lengthM, polyline, err := api.scenarioService.RouteNear(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewRouteResponse(origin, route, lengthM, polyline)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *scenarioAPI) scenarioSummary(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewScenarioResponse(api.scenarioService.Scenario())}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *scenarioAPI) validateRequest(request interface{}) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}
