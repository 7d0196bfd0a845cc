package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// EstateController serves estates, properties and units.
type EstateController struct {
	estateService *services.EstateService
	validate      *validator.Validate
}

func NewEstateController(s *services.EstateService) *EstateController {
	return &EstateController{estateService: s, validate: newValidator()}
}

// POST /estates
func (c *EstateController) CreateEstateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateEstateRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	estate, err := c.estateService.CreateEstate(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, estate)
}

// GET /estates
func (c *EstateController) ListEstatesHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	estates, err := c.estateService.ListEstates(r.Context(), opts)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, estates)
}

// DELETE /estates/{id}
func (c *EstateController) DeleteEstateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.estateService.DeleteEstate(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /properties
func (c *EstateController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	prop, err := c.estateService.CreateProperty(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// GET /properties?estate_id=
func (c *EstateController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		f   repositories.PropertyFilter
		err error
	)
	if f.ListOptions, err = listOptions(r); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.EstateID, err = queryUUID(r, "estate_id"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	props, err := c.estateService.ListProperties(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// DELETE /properties/{id}
func (c *EstateController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.estateService.DeleteProperty(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /units
func (c *EstateController) CreateUnitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUnitRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	unit, err := c.estateService.CreateUnit(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// GET /units?property_id=&occupied=&limit=&offset=
func (c *EstateController) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		f   repositories.UnitFilter
		err error
	)
	if f.ListOptions, err = listOptions(r); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.PropertyID, err = queryUUID(r, "property_id"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.Occupied, err = queryBool(r, "occupied"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	units, err := c.estateService.ListUnits(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}

// DELETE /units/{id}
func (c *EstateController) DeleteUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.estateService.DeleteUnit(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
