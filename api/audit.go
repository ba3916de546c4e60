package api

import (
	"net/http"
	"strconv"
)

// auditRecords pages through the audit log.
// GET /audit?from=<seq>&max=<n>
func (a *API) auditRecords(w http.ResponseWriter, r *http.Request) {
	var fromSeq uint64
	max := 100
	if raw := r.URL.Query().Get("from"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ErrMalformedParam.Withf("invalid from %q", raw).Write(w)
			return
		}
		fromSeq = v
	}
	if raw := r.URL.Query().Get("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			ErrMalformedParam.Withf("invalid max %q", raw).Write(w)
			return
		}
		max = v
	}
	records, err := a.ledger.AuditRecords(fromSeq, max)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &AuditResponse{Records: records})
}
