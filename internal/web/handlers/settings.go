package handlers

import "net/http"

// GetSettings returns all runtime settings.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GetAllSettings()
	if err != nil {
		h.serverError(w, err, "Failed to get settings")
		return
	}
	h.writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings stores the submitted key/value pairs.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings map[string]string
	if err := decodeJSON(r, &settings); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for key, value := range settings {
		if err := h.db.SetSetting(key, value); err != nil {
			h.serverError(w, err, "Failed to store setting")
			return
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
