package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/pkg/view"
)

type DeliveryHandler struct{}

func NewDeliveryHandler() *DeliveryHandler { return &DeliveryHandler{} }

// Zones handles GET /api/delivery/zones.
func (h *DeliveryHandler) Zones(c *gin.Context) {
	zs := delivery.Zones()
	out := make([]view.ZoneOption, 0, len(zs))
	for _, z := range zs {
		out = append(out, zoneOption(z))
	}
	render.OK(c, gin.H{"items": out})
}

// Match handles GET /api/delivery/match?lat=..&lng=..: geolocated
// nearest-zone lookup. A coordinate outside coverage is a valid
// answer, not an error; the caller falls back to manual address entry.
func (h *DeliveryHandler) Match(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		fields := map[string]string{}
		if latErr != nil {
			fields["lat"] = "La latitude est invalide."
		}
		if lngErr != nil {
			fields["lng"] = "La longitude est invalide."
		}
		render.ValidationFailed(c, fields)
		return
	}

	z := delivery.FindNearestZone(lat, lng)
	if z == nil {
		render.OK(c, gin.H{"matched": false})
		return
	}
	opt := zoneOption(*z)
	render.OK(c, gin.H{"matched": true, "zone": opt})
}

func zoneOption(z delivery.Zone) view.ZoneOption {
	return view.ZoneOption{
		Name:      z.Name,
		TimeRange: z.TimeRange,
		FeeFCFA:   z.FeeFCFA,
		Fee:       view.FormatFCFA(z.FeeFCFA),
	}
}
