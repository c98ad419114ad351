package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

// GeocodeAddress resolves a free-form address to lat/long through Nominatim.
// Used only at property-creation time when the owner supplied no
// coordinates; failures surface as an error the caller may ignore.
func GeocodeAddress(address string) (float64, float64, error) {
	base := os.Getenv("GEOCODER_URL")
	if base == "" {
		base = "https://nominatim.openstreetmap.org/search"
	}

	endpoint := base + "?format=json&limit=1&q=" + url.QueryEscape(address)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", "booking-clone-server")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, 0, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var parsed []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, 0, err
	}
	if len(parsed) == 0 {
		return 0, 0, fmt.Errorf("no result for address %q", address)
	}

	lat, err := strconv.ParseFloat(parsed[0].Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	long, err := strconv.ParseFloat(parsed[0].Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, long, nil
}
