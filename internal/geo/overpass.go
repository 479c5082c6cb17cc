package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/truthtriage/truthtriage/internal/models"
)

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// buildOverpassQuery returns the Overpass QL query for healthcare facilities
// within radiusM meters of the coordinates. Ways carry their centroid via
// "out center".
func buildOverpassQuery(lat, lon float64, radiusM int) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", radiusM, lat, lon)
	return fmt.Sprintf(`[out:json][timeout:15];
(
  node["amenity"="doctors"]%[1]s;
  node["amenity"="clinic"]%[1]s;
  node["amenity"="hospital"]%[1]s;
  node["healthcare"="doctor"]%[1]s;
  node["healthcare"="clinic"]%[1]s;
  way["amenity"="hospital"]%[1]s;
  way["amenity"="clinic"]%[1]s;
);
out center body 15;`, around)
}

// FindFacilities queries Overpass for healthcare facilities near the given
// coordinates. Service errors degrade to an empty list, never an error:
// facility lookup must not break the main answer flow.
func (c *Client) FindFacilities(ctx context.Context, coords models.Coordinates, specialization string, radiusM, limit int) []*models.Facility {
	query := buildOverpassQuery(coords.Latitude, coords.Longitude, radiusM)

	form := url.Values{}
	form.Set("data", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("overpass request failed", zap.Error(err))
		}
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.Error("overpass returned non-OK status", zap.String("status", resp.Status))
		}
		return nil
	}

	var out overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if c.logger != nil {
			c.logger.Error("decode overpass response failed", zap.Error(err))
		}
		return nil
	}

	titleCaser := cases.Title(language.English)
	specLower := strings.ToLower(specialization)
	facilities := make([]*models.Facility, 0, len(out.Elements))
	for _, el := range out.Elements {
		tags := el.Tags
		name := tags["name"]
		if name == "" {
			name = tags["operator"]
		}
		if name == "" {
			name = "Healthcare Facility"
		}

		lat, lon := el.Lat, el.Lon
		if (lat == 0 || lon == 0) && el.Center != nil {
			lat, lon = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 || lon == 0 {
			continue
		}

		facilities = append(facilities, &models.Facility{
			Name:           name,
			Specialization: displayedSpecialization(tags, specialization, specLower, titleCaser),
			Latitude:       lat,
			Longitude:      lon,
			Address:        facilityAddress(tags),
			Phone:          facilityPhone(tags),
		})
		if len(facilities) >= limit {
			break
		}
	}
	return facilities
}

// displayedSpecialization picks what to show for a facility: the requested
// specialization when the facility's tags mention it, otherwise the facility's
// own tagged speciality, otherwise the requested one.
func displayedSpecialization(tags map[string]string, requested, requestedLower string, titleCaser cases.Caser) string {
	healthcareSpec := strings.ToLower(tags["healthcare:speciality"])
	tagSpec := strings.ToLower(tags["medical_system:speciality"])
	if strings.Contains(healthcareSpec, requestedLower) || strings.Contains(tagSpec, requestedLower) {
		return requested
	}
	if healthcareSpec != "" {
		return titleCaser.String(strings.ReplaceAll(healthcareSpec, ";", ", "))
	}
	return requested
}

// facilityAddress joins the street, city, and postcode tags, falling back to
// the addr:full tag.
func facilityAddress(tags map[string]string) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"addr:street", "addr:city", "addr:postcode"} {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return tags["addr:full"]
}

func facilityPhone(tags map[string]string) string {
	if v := tags["phone"]; v != "" {
		return v
	}
	return tags["contact:phone"]
}
