package httpapi

import (
	"database/sql"
	"net/http"
)

type DBHandler struct {
	DB      *sql.DB
	Origins []string
}

func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !Trusted(r, h.Origins) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}

	if _, err := h.DB.ExecContext(r.Context(), `PRAGMA wal_checkpoint(FULL);`); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
