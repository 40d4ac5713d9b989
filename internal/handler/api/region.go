package api

import (
	"errors"
	"net/http"

	resdto "brow-studio-api/internal/handler/dto/response"
	"brow-studio-api/internal/pkg/regions"

	"github.com/gin-gonic/gin"
)

// RegionHandler serves the static administrative-region directory used by
// the intake address fields. The data is embedded, so there is no usecase
// layer behind it.
type RegionHandler struct{}

func NewRegionHandler() *RegionHandler {
	return &RegionHandler{}
}

// @Summary List provinces
// @Tags regions
// @Produce json
// @Success 200 {array} resdto.RegionResponse
// @Router /regions/provinces [get]
func (h *RegionHandler) ListProvinces(c *gin.Context) {
	c.JSON(http.StatusOK, toRegionResponses(regions.Provinces()))
}

// @Summary List districts
// @Tags regions
// @Produce json
// @Param province path string true "Province code"
// @Success 200 {array} resdto.RegionResponse
// @Failure 404 {object} map[string]string
// @Router /regions/provinces/{province}/districts [get]
func (h *RegionHandler) ListDistricts(c *gin.Context) {
	districts, err := regions.Districts(c.Param("province"))
	if err != nil {
		if errors.Is(err, regions.ErrUnknownCode) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unknown province code",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, toRegionResponses(districts))
}

// @Summary List sub-districts
// @Tags regions
// @Produce json
// @Param province path string true "Province code"
// @Param district path string true "District code"
// @Success 200 {array} resdto.RegionResponse
// @Failure 404 {object} map[string]string
// @Router /regions/provinces/{province}/districts/{district}/subdistricts [get]
func (h *RegionHandler) ListSubDistricts(c *gin.Context) {
	subDistricts, err := regions.SubDistricts(c.Param("province"), c.Param("district"))
	if err != nil {
		if errors.Is(err, regions.ErrUnknownCode) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unknown region code",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, toRegionResponses(subDistricts))
}

func toRegionResponses(in []regions.Region) []resdto.RegionResponse {
	out := make([]resdto.RegionResponse, len(in))
	for i, r := range in {
		out[i] = resdto.RegionResponse{Code: r.Code, Label: r.Label}
	}
	return out
}
