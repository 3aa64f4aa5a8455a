package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/middleware"
	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps typed domain errors to HTTP statuses in one place.
// Anything outside the taxonomy is a 500 with a generic message — raw DB or
// infra errors never reach clients.
func respondError(c *gin.Context, err error) {
	var (
		invalidInput *apierror.InvalidInputError
		notFound     *apierror.NotFoundError
		alreadyUsed  *apierror.AlreadyUsedError
		insufficient *apierror.InsufficientBalanceError
		closed       *apierror.ClosedRecordError
		division     *apierror.DivisionError
	)

	switch {
	case errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, apierror.New(invalidInput.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &alreadyUsed):
		c.JSON(http.StatusConflict, apierror.New(alreadyUsed.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.New(insufficient.Error()))
	case errors.As(err, &closed):
		c.JSON(http.StatusConflict, apierror.New(closed.Error()))
	case errors.As(err, &division):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(division.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}

// resolverEmpresa derives the tenant scope from the JWT claims. Returns
// uuid.Nil and false after writing the error response when resolution fails.
func resolverEmpresa(c *gin.Context, empresas service.EmpresaService) (uuid.UUID, bool) {
	empresaID, err := empresas.Resolver(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return empresaID, true
}

// parseIDParam parses the :id path segment.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
