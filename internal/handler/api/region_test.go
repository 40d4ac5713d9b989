//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"brow-studio-api/internal/handler/api"
	resdto "brow-studio-api/internal/handler/dto/response"
	"brow-studio-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := api.NewRegionHandler()
	router.GET("/regions/provinces", handler.ListProvinces)
	router.GET("/regions/provinces/:province/districts", handler.ListDistricts)
	router.GET("/regions/provinces/:province/districts/:district/subdistricts", handler.ListSubDistricts)
	return router
}

func TestRegionHandler_ListProvinces(t *testing.T) {
	router := regionRouter()

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/regions/provinces", nil, "")

	var response []resdto.RegionResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
	require.NotEmpty(t, response)
	assert.Equal(t, "11", response[0].Code)
	assert.Equal(t, "서울특별시", response[0].Label)
}

func TestRegionHandler_ListDistricts(t *testing.T) {
	router := regionRouter()

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/regions/provinces/11/districts", nil, "")

	var response []resdto.RegionResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
	require.NotEmpty(t, response)
	assert.Equal(t, "강남구", response[0].Label)
}

func TestRegionHandler_ListDistricts_UnknownProvince(t *testing.T) {
	router := regionRouter()

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/regions/provinces/99/districts", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "")
}

func TestRegionHandler_ListSubDistricts(t *testing.T) {
	router := regionRouter()

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/regions/provinces/11/districts/11680/subdistricts", nil, "")

	var response []resdto.RegionResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
	require.NotEmpty(t, response)
	assert.Equal(t, "역삼동", response[0].Label)
}
