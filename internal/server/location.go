package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foige/moxalise-api/internal/security"
	"github.com/foige/moxalise-api/internal/sheets"
)

// locationSheet collects raw geolocation submissions. Twelve columns wide,
// matching the values row built below.
const locationSheet = "gps_logs"

// tbilisiTZ is the fixed offset used for server-side timestamps.
var tbilisiTZ = time.FixedZone("GMT+4", 4*60*60)

func (s *Server) handleStoreLocation(w http.ResponseWriter, r *http.Request) {
	var loc LocationData
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if loc.PhoneNumber == "" {
		respondError(w, http.StatusBadRequest, "phone_number is required")
		return
	}

	loc.PhoneNumber = security.SanitizeInput(loc.PhoneNumber)
	loc.Message = security.SanitizeInput(loc.Message)
	userAgent := security.SanitizeInput(r.UserAgent())

	hashedIP, err := security.HashIPAddress(s.settings.IPHashSalt, clientIP(r))
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash client IP")
		respondJSON(w, http.StatusOK, LocationResponse{
			Success:   false,
			Message:   "Failed to store location data: " + err.Error(),
			Timestamp: time.Now().In(tbilisiTZ),
		})
		return
	}

	serverTimestamp := time.Now().In(tbilisiTZ)

	values := [][]interface{}{{
		serverTimestamp.Format(time.RFC3339),
		loc.Latitude,
		loc.Longitude,
		loc.Accuracy,
		optionalFloat(loc.Altitude),
		optionalFloat(loc.AltitudeAccuracy),
		optionalFloat(loc.Heading),
		optionalFloat(loc.Speed),
		loc.PhoneNumber,
		loc.Message,
		userAgent,
		hashedIP,
	}}

	appendedRange, err := s.port.AppendRows(r.Context(), sheets.Range{
		Sheet: locationSheet, StartCell: "A1", EndCell: "L3000",
	}, values, "USER_ENTERED")
	if err != nil {
		log.Error().Err(err).Msg("Failed to store location data")
		respondJSON(w, http.StatusOK, LocationResponse{
			Success:   false,
			Message:   "Failed to store location data: " + err.Error(),
			Timestamp: serverTimestamp,
		})
		return
	}

	respondJSON(w, http.StatusOK, LocationResponse{
		Success:   true,
		Message:   "Location data stored successfully. Appended to " + appendedRange + ".",
		Timestamp: serverTimestamp,
	})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func optionalFloat(value *float64) interface{} {
	if value == nil {
		return ""
	}
	return *value
}
